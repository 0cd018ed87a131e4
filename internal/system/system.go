// Package system wraps the host-facing odds and ends: resource limits,
// worker sizing, asset discovery and encoder detection.
package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit; a render spawns ffmpeg
// helpers and keeps several assets open at once.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not raise file limit: %v", err)
	}
}

// Workers picks a frame-worker count from the host's logical CPUs, capped so
// the in-flight frame canvases (frameBytes each) stay within a quarter of the
// available memory. Falls back to runtime.NumCPU when probing fails.
func Workers(frameBytes uint64) int {
	n := runtime.NumCPU()
	if counts, err := cpu.Counts(true); err == nil && counts > 0 {
		n = counts
	}

	if vm, err := mem.VirtualMemory(); err == nil && frameBytes > 0 {
		// Each in-flight frame holds a canvas plus decode scratch,
		// roughly 3x the raw frame size per worker.
		if byMem := int(vm.Available / 4 / (frameBytes * 3)); byMem < n {
			n = byMem
		}
	}

	if n < 1 {
		n = 1
	}
	return n
}

// FindLatestProject returns the most recently modified .yaml/.yml file in dir.
func FindLatestProject(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no project files found in %s", dir)
	}
	return latestFile, nil
}

// BestH264Encoder asks the local ffmpeg which hardware encoder is available,
// preferring VideoToolbox then NVENC, with libx264 as the software fallback.
func BestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}
