//go:build !cgo

package gui

import "github.com/san-kum/ambient/internal/config"

func Run(cfg *config.Config, start string) error { return ErrNoWindow }
