//go:build rp2040 || rp2350

// Firmware entry point: bridges a Synaptics touchpad on two GPIOs to a
// USB HID mouse. Diagnostics go to UART0; a ws2812 status pixel shows
// bring-up progress (yellow: probing, green: running, red: init failed).
package main

import (
	"context"
	"image/color"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"

	"github.com/delingren/synaptics-touchpad/bridge"
	"github.com/delingren/synaptics-touchpad/hal"
	"github.com/delingren/synaptics-touchpad/hid"
	"github.com/delingren/synaptics-touchpad/ps2"
	"github.com/delingren/synaptics-touchpad/synaptics"
	"github.com/delingren/synaptics-touchpad/x/logx"
)

// Wiring. The PS/2 lines need external pull-ups to the pad's supply.
const (
	uartTXPin = 0
	uartRXPin = 1

	clockPin = 2
	dataPin  = 3

	statusPin = 16
)

var (
	statusProbing = color.RGBA{R: 0x20, G: 0x10}
	statusRunning = color.RGBA{G: 0x20}
	statusFailed  = color.RGBA{R: 0x20}
)

func main() {
	// Allow USB to enumerate before anything chatty happens.
	time.Sleep(2 * time.Second)

	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.Pin(uartTXPin),
		RX:       machine.Pin(uartRXPin),
	})
	logx.SetOutput(console)
	logx.Print("boot")

	machine.Pin(statusPin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	status := ws2812.New(machine.Pin(statusPin))
	setStatus := func(c color.RGBA) {
		_ = status.WriteColors([]color.RGBA{c})
	}
	setStatus(statusProbing)

	clock, ok := hal.IRQByNumber(clockPin)
	if !ok {
		logx.Printf("bad clock pin %d", clockPin)
		return
	}
	data, ok := hal.IRQByNumber(dataPin)
	if !ok {
		logx.Printf("bad data pin %d", dataPin)
		return
	}

	sink := hid.Port()
	br := bridge.New(sink, bridge.Config{})

	engine, err := ps2.Begin(clock, data, br.ByteReceived)
	if err != nil {
		logx.Printf("ps2 begin: %v", err)
		setStatus(statusFailed)
		return
	}

	if err := engine.Reset(); err != nil {
		logx.Printf("reset: %v", err)
	}

	pad := synaptics.New(engine)
	if err := pad.Init(); err != nil {
		logx.Printf("synaptics init: %v", err)
		setStatus(statusFailed)
		return
	}

	setStatus(statusRunning)
	br.Run(context.Background())
}
