package main_test

import (
	"testing"

	"github.com/golox-lang/golox/internal/loxtest"
)

func TestGolox(t *testing.T) {
	binPath := loxtest.MustBuildBinary(t)
	loxtest.Run(t, binPath)
}
