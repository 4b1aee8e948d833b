// Package somweb provides a client for operating SOMMER garage door
// operators connected to a SOMweb gateway device.
//
// # Basic Usage
//
//	ctx := context.Background()
//	client, err := somweb.NewClient("http://192.168.1.20", "user", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	auth, err := client.Authenticate(ctx)
//	if err != nil || !auth.Success {
//	    log.Fatal("login failed")
//	}
//
//	doors := somweb.ParseDoors(auth.Page)
//	ok, err := client.OpenDoor(ctx, auth.Token, doors[0].ID)
//
// To wait for a door to finish moving:
//
//	reached, err := client.WaitForDoorState(ctx, doors[0].ID, somweb.StateOpen, 60*time.Second)
//
// # Configuration
//
// The client can be configured using functional options:
//
//	client, err := somweb.NewClient("http://192.168.1.20", "user", "secret",
//	    somweb.WithRequestTimeout(10*time.Second),
//	    somweb.WithPollInterval(2*time.Second),
//	    somweb.WithLogger(slog.Default()),
//	)
//
// # Gateway access
//
// The gateway is addressed either directly (local IP or hostname) or through
// the vendor's cloud relay using the device UDI, see NewClientFromUDI. The
// device exposes no structured API: login is a browser style form submission
// and door discovery scrapes the logged in HTML page, so a vendor firmware
// update changing the markup surfaces as ErrParse.
package somweb
