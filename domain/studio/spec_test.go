package studio

import (
	"image/color"
	"sync"
	"testing"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorLevel(t *testing.T) {
	for _, in := range []string{"L", "m", " q ", "H"} {
		l, err := ParseErrorLevel(in)
		require.NoError(t, err, in)
		assert.Contains(t, ErrorLevels, l)
	}

	_, err := ParseErrorLevel("X")
	assert.ErrorIs(t, err, ErrUnknownErrorLevel)
}

func TestErrorLevel_Recovery(t *testing.T) {
	assert.Equal(t, qrcode.Low, ErrorLevelL.Recovery())
	assert.Equal(t, qrcode.Medium, ErrorLevelM.Recovery())
	assert.Equal(t, qrcode.High, ErrorLevelQ.Recovery())
	assert.Equal(t, qrcode.Highest, ErrorLevelH.Recovery())
	assert.Equal(t, qrcode.Medium, ErrorLevel("?").Recovery())
}

func TestQRSpec_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*QRSpec)
		want   error
	}{
		{"valid", func(*QRSpec) {}, nil},
		{"empty", func(s *QRSpec) { s.Data = "" }, ErrEmptyText},
		{"whitespace", func(s *QRSpec) { s.Data = " \n" }, ErrEmptyText},
		{"box too small", func(s *QRSpec) { s.BoxSize = 1 }, ErrInvalidBoxSize},
		{"box too large", func(s *QRSpec) { s.BoxSize = 41 }, ErrInvalidBoxSize},
		{"border too small", func(s *QRSpec) { s.Border = 0 }, ErrInvalidBorder},
		{"border too large", func(s *QRSpec) { s.Border = 17 }, ErrInvalidBorder},
		{"bad color", func(s *QRSpec) { s.FillColor = "#zz" }, ErrInvalidColor},
		{"empty color is black", func(s *QRSpec) { s.FillColor = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := helloSpec()
			tt.modify(&spec)
			err := spec.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.want != nil, IsValidation(err))
		})
	}
}

func TestQRSpec_RenderOptions(t *testing.T) {
	spec := helloSpec()
	spec.FillColor = "#ff0000"
	spec.Background = WhiteBackground{}

	opts, err := spec.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, 10, opts.BoxSize)
	assert.Equal(t, 4, opts.Border)
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0xff}, opts.Fill)
	assert.Equal(t, color.White, opts.Background)

	spec.Background = TransparentBackground{}
	opts, err = spec.RenderOptions()
	require.NoError(t, err)
	assert.Nil(t, opts.Background)
}

func TestQRSpec_Key(t *testing.T) {
	a := helloSpec()
	b := helloSpec()
	assert.Equal(t, a.Key(), b.Key())

	b.Background = WhiteBackground{}
	assert.NotEqual(t, a.Key(), b.Key())

	c := helloSpec()
	c.FillColor = "BLACK"
	assert.Equal(t, a.Key(), c.Key())

	d := helloSpec()
	d.Data = "hello!"
	assert.NotEqual(t, a.Key(), d.Key())
}

func TestQRSpec_String(t *testing.T) {
	assert.Equal(t, "EC=M, box=10, border=4, bg=Transparent", helloSpec().String())
}

func TestBackgroundByName(t *testing.T) {
	bg, err := BackgroundByName("")
	require.NoError(t, err)
	assert.Equal(t, "White", bg.Name())
	assert.False(t, bg.Transparent())

	bg, err = BackgroundByName("Transparent")
	require.NoError(t, err)
	assert.Equal(t, "Transparent", bg.Name())
	assert.True(t, bg.Transparent())
	assert.Equal(t, color.Transparent, bg.BackColor())

	_, err = BackgroundByName("green")
	assert.ErrorIs(t, err, ErrUnknownBackground)
}

func TestValidationCode(t *testing.T) {
	assert.Equal(t, constant.ErrCodeEmptyText, ValidationCode(ErrEmptyText))
	assert.Equal(t, constant.ErrCodeInvalidColor, ValidationCode(helloSpecWithColor("nope").Validate()))
	assert.Equal(t, constant.ErrCodeEncode, ValidationCode(assert.AnError))
}

func helloSpecWithColor(c string) QRSpec {
	s := helloSpec()
	s.FillColor = c
	return s
}

func TestEventBus_PublishInOrder(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(func(m string) { got = append(got, "a:"+m) })
	bus.Subscribe(func(m string) { got = append(got, "b:"+m) })

	bus.Publish("one")
	bus.Publish("two")

	assert.Equal(t, []string{"a:one", "b:one", "a:two", "b:two"}, got)
}

func TestEventBus_NoSubscribers(t *testing.T) {
	assert.NotPanics(t, func() { NewEventBus().Publish("nobody listens") })
}

func TestEventBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	bus.Subscribe(func(string) {
		calls++
		bus.Subscribe(func(string) { calls++ })
	})

	bus.Publish("first")
	assert.Equal(t, 1, calls)

	bus.Publish("second")
	assert.Equal(t, 3, calls)
}

func TestEventBus_ConcurrentPublish(t *testing.T) {
	bus := NewEventBus()
	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish("x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}
