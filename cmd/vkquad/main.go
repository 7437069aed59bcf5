package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/andewx/vkquad"
	"github.com/andewx/vkquad/display"
)

func init() {
	// Window systems must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	usage := vkquad.NewUsage("vkquad")
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	usage.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	log := vkquad.NewStderrLogger()
	if usage.LogDir != "" {
		fileLog, err := vkquad.NewFileLogger(usage.LogDir)
		vkquad.Fatal(log, err)
		log = fileLog
	}
	defer log.Close()

	vkquad.Fatal(log, usage.Validate())
	if usage.Debug {
		usage.Print(os.Stderr)
	}

	program, err := vkquad.NewShaderLoader(usage.ShaderDirs).LoadProgram(context.Background())
	vkquad.Fatal(log, err)

	window, err := display.Open(usage.Window, usage.Title, usage.Width, usage.Height)
	vkquad.Fatal(log, err)

	instance, err := vkquad.NewCoreRenderInstance(window, program, usage, log)
	vkquad.Fatal(log, err, window.Destroy)

	err = instance.Run()
	instance.Destroy()
	window.Destroy()
	vkquad.Fatal(log, err)
}
