// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"runtime/pprof"

	"github.com/SoftbearStudios/cgp/pattern"
	"github.com/SoftbearStudios/cgp/pattern/noise"
)

func main() {
	var (
		cpuProfile string
		in         string
		out        string
		text       string
		seed       int64
		scale      int
		size       int
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&in, "in", "", "pattern file to render (generates one if empty)")
	flag.StringVar(&out, "out", "out.png", "png file to write")
	flag.StringVar(&text, "text", "", "pattern file to write")
	flag.Int64Var(&seed, "seed", 56, "seed of generated pattern")
	flag.IntVar(&scale, "scale", 32, "pixels per tile")
	flag.IntVar(&size, "size", 0, "width of the png in pixels, overrides scale")
	flag.Parse()

	if scale < 1 {
		log.Fatal("invalid argument scale: ", scale)
	}
	if size < 0 {
		log.Fatal("invalid argument size: ", size)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	run(in, out, text, seed, scale, size)
}

func run(in, out, text string, seed int64, scale, size int) {
	var p pattern.Pattern
	if in != "" {
		var err error
		if p, err = pattern.ParsePath(in); err != nil {
			log.Fatal(err)
		}
	} else {
		p = noise.NewDefault(seed).Generate()
	}

	if text != "" {
		if err := p.WriteToPath(text); err != nil {
			log.Fatal(err)
		}
	}

	if out == "" {
		return
	}

	file, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	var img image.Image
	if size > 0 {
		img = pattern.Thumbnail(&p, size)
	} else {
		img = pattern.Render(&p, scale)
	}

	if err = png.Encode(file, img); err != nil {
		log.Fatal(err)
	}
}
