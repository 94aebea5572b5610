package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"procmem/hexdump"
	"procmem/process"
)

func main() {
	pidFlag := flag.Int("pid", 0, "Process ID to attach to")
	nameFlag := flag.String("name", "", "Process name to attach to (lowest matching pid)")
	modulesFlag := flag.Bool("modules", false, "List the target's loaded modules")
	moduleFlag := flag.String("module", "", "Module name to resolve")
	addrFlag := flag.String("addr", "", "Address to read (hex, relative to --module when given)")
	sizeFlag := flag.Int("size", 256, "Number of bytes to read")
	flag.Parse()

	if *pidFlag == 0 && *nameFlag == "" {
		fmt.Println("Error: --pid or --name is required")
		flag.Usage()
		os.Exit(1)
	}

	pid := *pidFlag
	if pid == 0 {
		info, err := process.FindOneByName(*nameFlag)
		if err != nil {
			fmt.Printf("Error finding process %q: %v\n", *nameFlag, err)
			os.Exit(1)
		}
		fmt.Printf("Found %s with pid %d\n", info.Name, info.PID)
		pid = info.PID
	}

	proc, err := process.Open(pid)
	if err != nil {
		fmt.Printf("Error attaching to process %d: %v\n", pid, err)
		os.Exit(1)
	}
	defer proc.Close()

	if *modulesFlag {
		mods, err := proc.Modules()
		if err != nil {
			fmt.Printf("Error enumerating modules: %v\n", err)
			os.Exit(1)
		}
		for _, m := range mods {
			fmt.Printf("%016x  %10d  %s\n", uint64(m.Base), m.Size, m.Name)
		}
		return
	}

	var base process.Address
	if *moduleFlag != "" {
		base, err = proc.BaseAddress(*moduleFlag)
		if err != nil {
			fmt.Printf("Error resolving module %q: %v\n", *moduleFlag, err)
			os.Exit(1)
		}
		fmt.Printf("%s @ %v\n", *moduleFlag, base)
	}

	if *addrFlag == "" {
		if *moduleFlag == "" {
			fmt.Println("Error: --addr, --module or --modules is required")
			flag.Usage()
			os.Exit(1)
		}
		return
	}

	addrStr := strings.TrimPrefix(*addrFlag, "0x")
	addrVal, err := strconv.ParseUint(addrStr, 16, 64)
	if err != nil {
		fmt.Printf("Error parsing address: %v\n", err)
		os.Exit(1)
	}
	addr := base + process.Address(addrVal)

	data, err := proc.ReadMemory(addr, *sizeFlag)
	if err != nil {
		fmt.Printf("Error reading memory at %v: %v\n", addr, err)
		os.Exit(1)
	}

	fmt.Printf("\nHexdump at %v (%d bytes):\n", addr, *sizeFlag)
	fmt.Print(hexdump.DumpWithOffset(data, uint64(addr)))
}
