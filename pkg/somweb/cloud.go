package somweb

import (
	"errors"
	"fmt"
)

// cloudDomain is the vendor's relay service. Each gateway registered for
// remote access is reachable at https://<UDI>.somweb.world.
const cloudDomain = "somweb.world"

// CloudURL returns the cloud address for a gateway identified by its UDI,
// as printed on the physical device.
func CloudURL(udi string) string {
	return fmt.Sprintf("https://%s.%s", udi, cloudDomain)
}

// NewClientFromUDI creates a client that reaches the gateway through the
// vendor's cloud relay instead of a local address.
func NewClientFromUDI(udi, username, password string, opts ...ClientOption) (*Client, error) {
	if udi == "" {
		return nil, errors.New("UDI must not be empty")
	}
	return NewClient(CloudURL(udi), username, password, opts...)
}
