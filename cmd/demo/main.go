// Command demo wires the container, coordinator, renderer, and input
// packages into a runnable terminal application: a single boxed container
// showing a title and a clock line updated every second, until 'q' or
// Ctrl+C is pressed.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"termstage/cell"
	"termstage/config"
	"termstage/container"
	"termstage/coordinator"
	"termstage/input"
	"termstage/renderer"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "demo",
		Short: "Runs the terminal UI compositor demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config overlay")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log := slog.Default()

	quit := make(chan struct{})
	var closeOnce sync.Once
	signalQuit := func() { closeOnce.Do(func() { close(quit) }) }

	tty := renderer.New(os.Stdin, os.Stdout, log)
	if err := tty.Initialize(); err != nil {
		return fmt.Errorf("demo: initialize tty: %w", err)
	}
	defer tty.Shutdown()

	co := coordinator.New(tty, cfg, log)
	go co.Run()
	defer co.Stop()

	cols, rows, err := tty.Size()
	if err != nil || cols == 0 || rows == 0 {
		cols, rows = 80, 24
	}

	win := container.New("main", "/", "renderer-1", cols, rows, nil)
	co.Register(win)
	win.OnEvent(func(ev container.Event) {
		if e, ok := ev.(container.KeyCharEvent); ok && e.Codepoint == 'q' {
			signalQuit()
		}
	})

	win.RequestShow()
	win.PrintAt(2, 1, "termstage demo — press q to quit", cell.Style{Attrs: cell.AttrBold})
	win.DrawBox(container.Rect{X: 0, Y: 0, W: cols, H: rows}, nil, "demo", container.TopCenter, container.SingleLine)
	win.RequestRender()

	resizeWatcher := renderer.NewResizeWatcher(tty, cfg, func(w, h int) {
		co.OnResize(w, h)
	})
	resizeWatcher.Start()
	defer resizeWatcher.Stop()

	decoder := input.NewDecoder(tty.Reader(), log, signalQuit)
	go decoder.Run(func(ev input.Event) {
		routeInputEvent(win, ev)
	})

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return nil
		case now := <-ticker.C:
			win.PrintAt(2, 3, now.Format(time.TimeOnly), cell.Style{})
			win.RequestRender()
		}
	}
}

func routeInputEvent(c *container.Container, ev input.Event) {
	switch ev.Kind {
	case input.KeyDown:
		c.EmitEvent(container.KeyDownEvent{HID: int(ev.HID), Mod: int(ev.Mods)})
	case input.KeyUp:
		c.EmitEvent(container.KeyUpEvent{HID: int(ev.HID), Mod: int(ev.Mods)})
	case input.KeyChar:
		c.EmitEvent(container.KeyCharEvent{Codepoint: ev.Codepoint, Mod: int(ev.Mods)})
	}
}
