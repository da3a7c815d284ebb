package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/gridanim"
	"github.com/setanarut/gridanim/utils"
)

// config holds defaults read from the environment (and .env when present).
// Flags override every field.
type config struct {
	Background colorful.Color
	Workers    int
	Palette    utils.PaletteMethod
	Colors     int
	OutDir     string
}

func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("[WARN] could not read .env:", err)
	}

	opt := gridanim.DefaultOptions()
	enc := utils.DefaultEncodeOptions()
	cfg := config{
		Background: opt.Background,
		Workers:    0, // sized from the frame count
		Palette:    enc.PaletteMethod,
		Colors:     enc.Colors,
		OutDir:     "Output",
	}

	if v := os.Getenv("GRIDANIM_BACKGROUND"); v != "" {
		c, err := colorful.Hex(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDANIM_BACKGROUND: %w", err)
		}
		cfg.Background = c
	}
	if v := os.Getenv("GRIDANIM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDANIM_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("GRIDANIM_PALETTE"); v != "" {
		m, err := utils.ParsePaletteMethod(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDANIM_PALETTE: %w", err)
		}
		cfg.Palette = m
	}
	if v := os.Getenv("GRIDANIM_COLORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDANIM_COLORS: %w", err)
		}
		cfg.Colors = n
	}
	if v := os.Getenv("GRIDANIM_OUTDIR"); v != "" {
		cfg.OutDir = v
	}
	return cfg, nil
}
