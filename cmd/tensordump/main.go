// Copyright 2026 The NerveStream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tensordump is a developer diagnostic: it reads a binary tensor
// container from a file, runs it through the converter, and prints the
// negotiated stream configuration and the decoded tensor views.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/nervestream/tensorconv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var verbose bool
	var hexBytes int

	flagSet := pflag.NewFlagSet("tensordump", pflag.ContinueOnError)
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flagSet.IntVar(&hexBytes, "hex", 0, "print up to N leading payload bytes per tensor")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: tensordump [flags] <container-file>")
	}
	path := flagSet.Arg(0)

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	conv := tensorconv.New(tensorconv.WithLogger(logger))

	var cfg tensorconv.Config
	out, err := conv.Decode(tensorconv.NewBuffer(data), &cfg)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	defer out.Release()

	fmt.Printf("%s: %d bytes, %d tensors, rate %d/%d, payload total %d bytes\n",
		path, len(data), cfg.NumTensors, cfg.Rate.Num, cfg.Rate.Den, out.TotalSize())

	for i, view := range out.Views() {
		info := cfg.Tensors[i]
		name := info.Name
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Printf("  [%d] %-20s %-8s shape=%v offset=%d length=%d\n",
			i, name, info.Type, info.Shape, view.Offset(), view.Len())
		if hexBytes > 0 {
			b := view.Bytes()
			if len(b) > hexBytes {
				b = b[:hexBytes]
			}
			fmt.Printf("      %x\n", b)
		}
	}
	return nil
}
