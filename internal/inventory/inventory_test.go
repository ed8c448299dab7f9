package inventory

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleInventory = `
devices:
  R51:
    host: 10.0.0.51
    username: admin
    password: secret51
    secret: enable51
  R52:
    host: 10.0.0.52
    username: admin
    password: secret52
    port: 2222
    device_type: cisco_xe
  R50:
    host: 10.0.0.50
    username: admin
    password: secret50
`

func TestParsePreservesDocumentOrder(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{"R51", "R52", "R50"}
	if got := inv.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if got := inv.DefaultName(); got != "R51" {
		t.Fatalf("DefaultName() = %q, want R51", got)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, r51, err := inv.Get("R51")
	if err != nil {
		t.Fatalf("Get(R51) error = %v", err)
	}
	if r51.Port != 22 {
		t.Fatalf("R51 port = %d, want default 22", r51.Port)
	}
	if r51.DeviceType != "cisco_ios" {
		t.Fatalf("R51 device_type = %q, want default cisco_ios", r51.DeviceType)
	}

	_, r52, err := inv.Get("R52")
	if err != nil {
		t.Fatalf("Get(R52) error = %v", err)
	}
	if r52.Port != 2222 {
		t.Fatalf("R52 port = %d, want 2222", r52.Port)
	}
	if r52.DeviceType != "cisco_xe" {
		t.Fatalf("R52 device_type = %q, want cisco_xe", r52.DeviceType)
	}
}

func TestGetEmptyNameSelectsDefault(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	name, dev, err := inv.Get("")
	if err != nil {
		t.Fatalf("Get(\"\") error = %v", err)
	}
	if name != "R51" {
		t.Fatalf("Get(\"\") name = %q, want R51", name)
	}
	if dev.Host != "10.0.0.51" {
		t.Fatalf("Get(\"\") host = %q, want 10.0.0.51", dev.Host)
	}
}

func TestGetUnknownDevice(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, _, err := inv.Get("R99"); err == nil {
		t.Fatal("Get(R99) error = nil, want unknown device error")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "no devices mapping",
			data:    "targets:\n  R51:\n    host: 10.0.0.51\n",
			wantErr: "'devices' mapping",
		},
		{
			name:    "empty devices mapping",
			data:    "devices: {}\n",
			wantErr: "'devices' mapping",
		},
		{
			name:    "missing host",
			data:    "devices:\n  R51:\n    username: admin\n    password: x\n",
			wantErr: `device "R51" must include`,
		},
		{
			name:    "missing password",
			data:    "devices:\n  R51:\n    host: 10.0.0.51\n    username: admin\n",
			wantErr: `device "R51" must include`,
		},
		{
			name:    "malformed yaml",
			data:    "devices:\n\t- broken",
			wantErr: "parsing inventory",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	if err := os.WriteFile(path, []byte(sampleInventory), 0o644); err != nil {
		t.Fatalf("writing inventory: %v", err)
	}

	inv, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := inv.DefaultName(); got != "R51" {
		t.Fatalf("DefaultName() = %q, want R51", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() error = nil, want read error")
	}
}
