// Package inventory loads the YAML device inventory served by netmcpd.
//
// The file shape is a top-level devices mapping:
//
//	devices:
//	  R51:
//	    host: 10.0.0.51
//	    username: admin
//	    password: secret
//	    secret: enablepw
//	    port: 22
//	    device_type: cisco_ios
//
// Device order in the document is preserved; the first device is the
// default target when a tool call names none.
package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Device is one inventory entry. Host, Username and Password are required.
type Device struct {
	Host       string `yaml:"host"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Secret     string `yaml:"secret"`
	Port       int    `yaml:"port"`
	DeviceType string `yaml:"device_type"`
}

// Inventory holds the loaded devices plus their document order.
type Inventory struct {
	names   []string
	devices map[string]Device
}

// Load reads and validates an inventory file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	return Parse(data)
}

// Parse decodes inventory YAML. The devices mapping must exist and contain
// at least one entry.
func Parse(data []byte) (*Inventory, error) {
	var doc struct {
		Devices yaml.Node `yaml:"devices"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}
	if doc.Devices.Kind != yaml.MappingNode || len(doc.Devices.Content) == 0 {
		return nil, fmt.Errorf("inventory must contain a top-level 'devices' mapping with at least one device")
	}

	inv := &Inventory{devices: make(map[string]Device)}
	// A mapping node alternates key and value nodes.
	for i := 0; i+1 < len(doc.Devices.Content); i += 2 {
		name := doc.Devices.Content[i].Value
		var dev Device
		if err := doc.Devices.Content[i+1].Decode(&dev); err != nil {
			return nil, fmt.Errorf("device %q: %w", name, err)
		}
		if dev.Host == "" || dev.Username == "" || dev.Password == "" {
			return nil, fmt.Errorf("device %q must include 'host', 'username', and 'password'", name)
		}
		if dev.Port == 0 {
			dev.Port = 22
		}
		if dev.DeviceType == "" {
			dev.DeviceType = "cisco_ios"
		}
		inv.names = append(inv.names, name)
		inv.devices[name] = dev
	}
	return inv, nil
}

// Names returns device names in document order.
func (inv *Inventory) Names() []string {
	return append([]string(nil), inv.names...)
}

// DefaultName returns the first device in document order.
func (inv *Inventory) DefaultName() string {
	return inv.names[0]
}

// Get looks up a device by name. An empty name selects the default device.
func (inv *Inventory) Get(name string) (string, Device, error) {
	if name == "" {
		name = inv.DefaultName()
	}
	dev, ok := inv.devices[name]
	if !ok {
		return "", Device{}, fmt.Errorf("unknown device: %s", name)
	}
	return name, dev, nil
}
