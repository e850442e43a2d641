package nes

import "errors"

// ErrUnsupportedMapper is returned by NewCartridge when the iNES header names
// a mapper number this core doesn't implement (anything but NROM/mapper 0).
var ErrUnsupportedMapper = errors.New("nes: unsupported mapper")

// ErrBadMagic is returned by NewCartridge when the first 4 bytes aren't "NES\x1A".
var ErrBadMagic = errors.New("nes: not an iNES file")

// ErrTruncatedROM is returned by NewCartridge when the file is shorter than
// the header promises.
var ErrTruncatedROM = errors.New("nes: truncated ROM payload")
