// cmd/modprobe/main.go

// Command modprobe is a one-shot Modbus-RTU diagnostic. It talks to a
// device through an independent protocol stack (goburrow/modbus), which
// makes it useful for cross-checking what the gateway reports: if
// modprobe sees different register values, suspect the device, not the
// gateway.
//
// Examples:
//
//	modprobe -device /dev/ttyACM0 -slave 5 -addr 0 -qty 16
//	modprobe -device /dev/ttyACM0 -slave 5 -addr 3 -write 100
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goburrow/modbus"
)

func main() {
	device := flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud := flag.Int("baud", 115200, "Baud rate")
	dataBits := flag.Int("databits", 8, "Data bits")
	parity := flag.String("parity", "N", "Parity: N, E or O")
	stopBits := flag.Int("stopbits", 1, "Stop bits")
	slave := flag.Int("slave", 5, "Slave address (1-247)")
	timeout := flag.Duration("timeout", time.Second, "Response timeout")
	addr := flag.Int("addr", 0, "Register address")
	qty := flag.Int("qty", 1, "Registers to read")
	write := flag.Int("write", -1, "Value to write (0-65535); -1 reads instead")
	flag.Parse()

	if *slave < 1 || *slave > 247 {
		log.Fatalf("slave address %d out of range 1-247", *slave)
	}
	if *addr < 0 || *addr > 65535 {
		log.Fatalf("register address %d out of range", *addr)
	}

	handler := modbus.NewRTUClientHandler(*device)
	handler.BaudRate = *baud
	handler.DataBits = *dataBits
	handler.Parity = *parity
	handler.StopBits = *stopBits
	handler.SlaveId = byte(*slave)
	handler.Timeout = *timeout

	if err := handler.Connect(); err != nil {
		log.Fatalf("connect %s: %v", *device, err)
	}
	defer handler.Close()

	client := modbus.NewClient(handler)

	if *write >= 0 {
		if *write > 65535 {
			log.Fatalf("write value %d out of range 0-65535", *write)
		}
		if _, err := client.WriteSingleRegister(uint16(*addr), uint16(*write)); err != nil {
			log.Fatalf("write register %d: %v", *addr, err)
		}
		fmt.Printf("wrote %d to register %d\n", *write, *addr)
		return
	}

	if *qty < 1 || *addr+*qty-1 > 65535 {
		log.Fatalf("quantity %d out of range", *qty)
	}

	raw, err := client.ReadHoldingRegisters(uint16(*addr), uint16(*qty))
	if err != nil {
		log.Fatalf("read %d registers at %d: %v", *qty, *addr, err)
	}
	if len(raw) < 2*(*qty) {
		fmt.Fprintf(os.Stderr, "short response: %d bytes for %d registers\n", len(raw), *qty)
	}

	for i := 0; i+1 < len(raw); i += 2 {
		v := binary.BigEndian.Uint16(raw[i : i+2])
		fmt.Printf("register %5d = %5d (0x%04x, signed %d)\n", *addr+i/2, v, v, int16(v))
	}
}
