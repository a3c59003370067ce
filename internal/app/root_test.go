package app

import (
	"testing"

	"github.com/blackwell-systems/fskit/internal/config"
	"github.com/blackwell-systems/fskit/internal/output"
)

func TestColorConfigDisablesColor(t *testing.T) {
	output.SetNoColor(false)
	flagNoColor = false
	applyOutputConfig(&config.Config{Output: config.Output{Color: true}})
	if output.IsNoColor() {
		t.Fatal("output.color true should leave color on")
	}
	applyOutputConfig(&config.Config{Output: config.Output{Color: false}})
	if !output.IsNoColor() {
		t.Fatal("output.color false should disable color")
	}
}

func TestNoColorFlagWinsOverConfig(t *testing.T) {
	output.SetNoColor(false)
	flagNoColor = true
	defer func() { flagNoColor = false }()
	applyOutputConfig(&config.Config{Output: config.Output{Color: true}})
	if !output.IsNoColor() {
		t.Fatal("--no-color should disable color regardless of config")
	}
}
