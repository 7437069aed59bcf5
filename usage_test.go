package vkquad

import (
	"bytes"
	"flag"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestUsageFlags(t *testing.T) {
	u := NewUsage("quad")
	fs := flag.NewFlagSet("quad", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	u.RegisterFlags(fs)

	err := fs.Parse([]string{
		"-width", "1024", "-height", "768", "-window", "sdl2", "-debug",
		"-queue-policy", "first", "-shaders", "a, b", "-shaders", "c", "-frames", "10",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Width != 1024 || u.Height != 768 || u.Window != WindowSDL2 || !u.Debug || u.Frames != 10 {
		t.Errorf("usage = %+v", u)
	}
	if u.Policy() != FirstMatch {
		t.Errorf("Policy() = %v, want first", u.Policy())
	}
	if !reflect.DeepEqual(u.ShaderDirs, []string{"a", "b", "c"}) {
		t.Errorf("ShaderDirs = %v, want the flag values to replace the defaults", u.ShaderDirs)
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestUsageDefaults(t *testing.T) {
	u := NewUsage("quad")
	if err := u.Validate(); err != nil {
		t.Fatal(err)
	}
	if u.Policy() != LastMatch || u.Window != WindowGLFW || u.Frames != 0 {
		t.Errorf("defaults = %+v", u)
	}

	var buf bytes.Buffer
	u.Print(&buf)
	if !strings.Contains(buf.String(), "size=800x600") || !strings.Contains(buf.String(), "queue-policy=last") {
		t.Errorf("Print() = %q", buf.String())
	}
}

func TestUsageValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(u *Usage)
	}{
		{"zero width", func(u *Usage) { u.Width = 0 }},
		{"negative height", func(u *Usage) { u.Height = -1 }},
		{"unknown window", func(u *Usage) { u.Window = "x11" }},
		{"unknown policy", func(u *Usage) { u.QueuePolicy = "random" }},
		{"no shader dirs", func(u *Usage) { u.ShaderDirs = nil }},
		{"negative frames", func(u *Usage) { u.Frames = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUsage("quad")
			tt.modify(u)
			if err := u.Validate(); err == nil {
				t.Errorf("Validate() succeeded for %+v", u)
			}
		})
	}
}
