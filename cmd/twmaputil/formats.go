package main

import (
	"fmt"

	"github.com/eak1mov/go-twmap/mapitem"
)

func parseEncoding(name string) (mapitem.StringEncoding, error) {
	switch name {
	case "utf-16le", "utf16", "":
		return mapitem.UTF16LE, nil
	case "utf-8", "utf8":
		return mapitem.UTF8, nil
	}
	return 0, fmt.Errorf("invalid string encoding: %q", name)
}
