package smartcube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

var (
	ErrNotConnected     = errors.New("smartcube: not connected")
	ErrAlreadyConnected = errors.New("smartcube: already connected")
	ErrDeviceNotFound   = errors.New("smartcube: device not found")
)

var (
	serviceUUID = mustUUID(ServiceUUID)
	txCharUUID  = mustUUID(TxCharUUID)
	rxCharUUID  = mustUUID(RxCharUUID)
)

func mustUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("smartcube: bad uuid %q: %v", s, err))
	}
	return u
}

// Device is a discovered smart cube.
type Device struct {
	Name    string
	Address string
	RSSI    int16

	addr bluetooth.Address
}

// Client owns the Bluetooth connection to one cube and forwards its
// notifications to a Handler.
type Client struct {
	adapter *bluetooth.Adapter
	handler *Handler

	mu        sync.RWMutex
	device    bluetooth.Device
	rx        bluetooth.DeviceCharacteristic
	connected bool
	name      string
	address   string
}

// NewClient enables the default adapter.
func NewClient(h *Handler) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, handler: h}, nil
}

// Scan collects GoCube devices until timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]Device, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		devices []Device
		seen    = make(map[string]bool)
	)

	done := make(chan error, 1)
	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			addr := r.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true
			devices = append(devices, Device{Name: name, Address: addr, RSSI: r.RSSI, addr: r.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return devices, nil
}

// Find scans until a device with the given address appears.
func (c *Client) Find(ctx context.Context, address string, timeout time.Duration) (Device, error) {
	found := make(chan Device, 1)
	var once sync.Once

	go func() {
		c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			if r.Address.String() != address {
				return
			}
			once.Do(func() {
				found <- Device{Name: r.LocalName(), Address: address, RSSI: r.RSSI, addr: r.Address}
			})
		})
	}()

	select {
	case d := <-found:
		c.adapter.StopScan()
		return d, nil
	case <-time.After(timeout):
		c.adapter.StopScan()
		return Device{}, ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return Device{}, ctx.Err()
	}
}

// Connect connects to d and subscribes to notifications.
func (c *Client) Connect(d Device) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(d.addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("failed to discover GoCube service: %v", err)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var tx, rx bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
	}

	err = tx.EnableNotifications(func(buf []byte) {
		// The buffer is reused by the stack.
		data := append([]byte(nil), buf...)
		_ = c.handler.HandleNotification(data)
	})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rx = rx
	c.connected = true
	c.name = d.Name
	c.address = d.Address
	c.mu.Unlock()

	return c.Send(CmdRequestBattery)
}

// Disconnect drops the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.name = ""
	c.address = ""
	return err
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Name returns the connected device name.
func (c *Client) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Address returns the connected device address.
func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Send writes a command to the cube.
func (c *Client) Send(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}

	data := Command(cmd)
	if _, err := c.rx.WriteWithoutResponse(data); err != nil {
		if _, err := c.rx.Write(data); err != nil {
			return fmt.Errorf("failed to send command 0x%02X: %w", cmd, err)
		}
	}
	return nil
}
