package vkquad

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	WindowGLFW = "glfw"
	WindowSDL2 = "sdl2"
)

// Usage holds the run configuration for a render instance.
type Usage struct {
	Name        string
	Title       string
	Width       int
	Height      int
	Window      string
	Debug       bool
	QueuePolicy string
	ShaderDirs  []string
	LogDir      string
	// Frames stops the loop after that many frames. Zero runs until the
	// window asks to close.
	Frames int
}

func NewUsage(name string) *Usage {
	return &Usage{
		Name:        name,
		Title:       "Vulkan Quad",
		Width:       800,
		Height:      600,
		Window:      WindowGLFW,
		QueuePolicy: LastMatch.String(),
		ShaderDirs:  []string{"shaders", "../shaders", "../../shaders"},
	}
}

type dirList struct {
	dirs *[]string
	set  bool
}

func (d *dirList) String() string {
	if d.dirs == nil {
		return ""
	}
	return strings.Join(*d.dirs, ",")
}

func (d *dirList) Set(value string) error {
	if !d.set {
		*d.dirs = nil
		d.set = true
	}
	for _, dir := range strings.Split(value, ",") {
		if dir = strings.TrimSpace(dir); dir != "" {
			*d.dirs = append(*d.dirs, dir)
		}
	}
	return nil
}

// RegisterFlags binds every field to fs, using the current values as defaults.
func (u *Usage) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&u.Title, "title", u.Title, "window title")
	fs.IntVar(&u.Width, "width", u.Width, "window width in pixels")
	fs.IntVar(&u.Height, "height", u.Height, "window height in pixels")
	fs.StringVar(&u.Window, "window", u.Window, "window backend: glfw or sdl2")
	fs.BoolVar(&u.Debug, "debug", u.Debug, "enable validation layers and the debug report callback")
	fs.StringVar(&u.QueuePolicy, "queue-policy", u.QueuePolicy, "queue family choice when several match: last or first")
	fs.Var(&dirList{dirs: &u.ShaderDirs}, "shaders", "comma separated directories searched for vert.spv and frag.spv")
	fs.StringVar(&u.LogDir, "logdir", u.LogDir, "write info, warning and error logs to this directory")
	fs.IntVar(&u.Frames, "frames", u.Frames, "stop after this many frames, 0 runs until the window closes")
}

func (u *Usage) Validate() error {
	if u.Width <= 0 || u.Height <= 0 {
		return errors.Newf("invalid window size %dx%d", u.Width, u.Height)
	}
	if u.Window != WindowGLFW && u.Window != WindowSDL2 {
		return errors.Newf("unknown window backend %q", u.Window)
	}
	if _, err := ParseQueueFamilyPolicy(u.QueuePolicy); err != nil {
		return err
	}
	if len(u.ShaderDirs) == 0 {
		return errors.New("no shader directories configured")
	}
	if u.Frames < 0 {
		return errors.Newf("negative frame limit %d", u.Frames)
	}
	return nil
}

// Policy returns the parsed queue family policy, falling back to LastMatch.
func (u *Usage) Policy() QueueFamilyPolicy {
	policy, err := ParseQueueFamilyPolicy(u.QueuePolicy)
	if err != nil {
		return LastMatch
	}
	return policy
}

//Prints usage properties
func (u *Usage) Print(w io.Writer) {
	fmt.Fprintf(w, "%s: title=%q size=%dx%d window=%s debug=%t queue-policy=%s shaders=%s logdir=%q frames=%d\n",
		u.Name, u.Title, u.Width, u.Height, u.Window, u.Debug, u.QueuePolicy,
		strings.Join(u.ShaderDirs, ","), u.LogDir, u.Frames)
}
