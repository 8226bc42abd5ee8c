//go:build linux

package linuxinput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
}

func ListInputDevices() ([]DeviceInfo, error) {
	return describeDevices(nil)
}

// describeDevices opens every event device, keeps those accepted by filter
// (all when filter is nil) and returns them sorted by path.
func describeDevices(filter func(*evdev.InputDevice) bool) ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	devices := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}
		if filter == nil || filter(dev) {
			name := path.Name
			if actualName, err := dev.Name(); err == nil && actualName != "" {
				name = actualName
			}
			devices = append(devices, DeviceInfo{
				Path:      path.Path,
				Name:      name,
				IsVirtual: deviceIsVirtual(dev, name),
				IsPointer: deviceIsPointer(dev),
			})
		}
		_ = dev.Close()
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Path < devices[j].Path
	})
	return devices, nil
}

// OpenToggleDevices opens the devices to watch for the toggle key. With an
// explicit devicePath only that device is used; otherwise every device that
// exposes the key, preferring physical ones.
func OpenToggleDevices(devicePath string, code uint16) ([]*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := openInputDevice(devicePath)
		if err != nil {
			return nil, err
		}
		if !deviceSupportsCode(dev, code) {
			_ = dev.Close()
			return nil, fmt.Errorf("%s does not expose toggle %s", devicePath, FormatCodeName(code))
		}
		return []*evdev.InputDevice{dev}, nil
	}

	matches, err := findDevicesByCode(code)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no input device exposes toggle %s; run `autotap devices` and set hotkey.device", FormatCodeName(code))
	}

	devices := make([]*evdev.InputDevice, 0, len(matches))
	for _, match := range matches {
		dev, err := openInputDevice(match.Path)
		if err != nil {
			continue
		}
		devices = append(devices, dev)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("found devices exposing %s, but failed to open any of them", FormatCodeName(code))
	}
	return devices, nil
}

func openInputDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func deviceSupportsCode(device *evdev.InputDevice, code uint16) bool {
	needle := evdev.EvCode(code)
	for _, c := range device.CapableEvents(evdev.EV_KEY) {
		if c == needle {
			return true
		}
	}
	return false
}

func deviceIsVirtual(device *evdev.InputDevice, name string) bool {
	id, err := device.InputID()
	if err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		return true
	}
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput", "ydotool", "autotap", "autoclicker"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func deviceIsPointer(device *evdev.InputDevice) bool {
	var hasRelX, hasRelY bool
	for _, code := range device.CapableEvents(evdev.EV_REL) {
		if code == evdev.REL_X {
			hasRelX = true
		}
		if code == evdev.REL_Y {
			hasRelY = true
		}
	}
	if hasRelX && hasRelY {
		return true
	}
	return len(device.CapableEvents(evdev.EV_ABS)) > 0
}

func codeIsMouseButton(code uint16) bool {
	c := evdev.EvCode(code)
	return c >= evdev.BTN_MOUSE && c <= evdev.BTN_TASK
}

func findDevicesByCode(code uint16) ([]DeviceInfo, error) {
	matches, err := describeDevices(func(dev *evdev.InputDevice) bool {
		return deviceSupportsCode(dev, code)
	})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return matches, nil
	}

	pool := make([]DeviceInfo, 0, len(matches))
	for _, match := range matches {
		if !match.IsVirtual {
			pool = append(pool, match)
		}
	}
	if len(pool) == 0 {
		pool = matches
	}

	if codeIsMouseButton(code) {
		pointerPool := make([]DeviceInfo, 0, len(pool))
		for _, match := range pool {
			if match.IsPointer {
				pointerPool = append(pointerPool, match)
			}
		}
		if len(pointerPool) > 0 {
			pool = pointerPool
		}
	}

	return pool, nil
}
