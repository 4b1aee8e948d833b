package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/zberg/go-somweb/pkg/somweb"
)

var (
	gatewayURL string
	gatewayUDI string
	username   string
	password   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "url", "", "Gateway URL (local IP or hostname)")
	rootCmd.PersistentFlags().StringVar(&gatewayUDI, "udi", "", "Gateway UDI for access through the vendor cloud")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "SOMweb username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "SOMweb password")

	rootCmd.AddCommand(aliveCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(udiCmd)
	rootCmd.AddCommand(doorsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deviceInfoCmd)
	rootCmd.AddCommand(checkUpdateCmd)
}

var aliveCmd = &cobra.Command{
	Use:   "alive",
	Short: "Check that the gateway is reachable and responding",
	Run: func(cmd *cobra.Command, args []string) {
		client := getClient()
		if client.IsAlive(context.Background()) {
			fmt.Println("Gateway is alive.")
		} else {
			fmt.Println("Gateway is not responding.")
			os.Exit(1)
		}
	},
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify that the gateway accepts the credentials",
	Run: func(cmd *cobra.Command, args []string) {
		client := getClient()
		auth, err := client.Authenticate(context.Background())
		if err != nil {
			fmt.Printf("Error authenticating: %v\n", err)
			os.Exit(1)
		}
		if !auth.Success {
			fmt.Println("Authentication failed.")
			os.Exit(1)
		}
		fmt.Println("Authentication succeeded.")
	},
}

var udiCmd = &cobra.Command{
	Use:   "udi",
	Short: "Show the UDI of the gateway",
	Run: func(cmd *cobra.Command, args []string) {
		_, auth := getAuthenticated()
		udi, ok := somweb.UDIFromPage(auth.Page)
		if !ok {
			fmt.Println("UDI not found on gateway page.")
			os.Exit(1)
		}
		fmt.Println(udi)
	},
}

var doorsCmd = &cobra.Command{
	Use:   "doors",
	Short: "List doors connected to the gateway with their current state",
	Run: func(cmd *cobra.Command, args []string) {
		client, auth := getAuthenticated()

		doors := somweb.ParseDoors(auth.Page)
		if len(doors) == 0 {
			fmt.Println("No doors found.")
			return
		}

		for _, door := range doors {
			state, err := client.DoorStatus(context.Background(), door.ID)
			if err != nil {
				fmt.Printf("Door %d (%s): error: %v\n", door.ID, door.Name, err)
				continue
			}
			fmt.Printf("Door %d (%s): %s\n", door.ID, door.Name, state)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [door-id]",
	Short: "Show the current state of a door",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doorID := parseDoorID(args[0])
		client, _ := getAuthenticated()

		state, err := client.DoorStatus(context.Background(), doorID)
		if err != nil {
			fmt.Printf("Error getting door status: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(state)
	},
}

var openCmd = &cobra.Command{
	Use:   "open [door-id]",
	Short: "Open a door and wait for it to finish",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDoorAction(cmd, args[0], somweb.ActionOpen)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close [door-id]",
	Short: "Close a door and wait for it to finish",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDoorAction(cmd, args[0], somweb.ActionClose)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [door-id]",
	Short: "Toggle a door position without waiting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doorID := parseDoorID(args[0])
		client, auth := getAuthenticated()

		ok, err := client.Toggle(context.Background(), auth.Token, doorID)
		if err != nil {
			fmt.Printf("Error toggling door: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Println("Gateway rejected the command.")
			os.Exit(1)
		}
		fmt.Println("Command sent successfully.")
	},
}

var deviceInfoCmd = &cobra.Command{
	Use:   "device-info",
	Short: "Show gateway details (requires an administrator account)",
	Run: func(cmd *cobra.Command, args []string) {
		client, auth := getAuthenticated()

		if !somweb.IsAdminPage(auth.Page) {
			fmt.Println("Administrator rights required for device info.")
			os.Exit(1)
		}

		info, err := client.DeviceInfo(context.Background())
		if err != nil {
			fmt.Printf("Error getting device info: %v\n", err)
			os.Exit(1)
		}

		remote := "disabled"
		if info.RemoteAccessEnabled {
			remote = "enabled"
		}
		fmt.Printf("Firmware version: %s\n", info.FirmwareVersion)
		fmt.Printf("IP address:       %s\n", info.IPAddress)
		fmt.Printf("Remote access:    %s\n", remote)
		fmt.Printf("WiFi signal:      %d %s (quality %d/4)\n", info.WifiSignalLevel, info.WifiSignalUnit, info.WifiSignalQuality)
		fmt.Printf("Time zone:        %s\n", info.TimeZone)
	},
}

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check whether a firmware update is available",
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := getAuthenticated()

		available, err := client.UpdateAvailable(context.Background())
		if err != nil {
			fmt.Printf("Error checking for updates: %v\n", err)
			os.Exit(1)
		}
		if available {
			fmt.Println("A firmware update is available.")
		} else {
			fmt.Println("Gateway firmware is up to date.")
		}
	},
}

func init() {
	openCmd.Flags().Duration("timeout", somweb.DefaultStateChangeTimeout, "Maximum time to wait for the door to finish moving")
	closeCmd.Flags().Duration("timeout", somweb.DefaultStateChangeTimeout, "Maximum time to wait for the door to finish moving")
}

func runDoorAction(cmd *cobra.Command, doorArg string, action somweb.DoorAction) {
	doorID := parseDoorID(doorArg)
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client, auth := getAuthenticated()
	ctx := context.Background()

	ok, err := client.DoorAction(ctx, auth.Token, doorID, action)
	if err != nil {
		fmt.Printf("Error operating door: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Gateway rejected the command.")
		os.Exit(1)
	}

	start := time.Now()
	reached, err := client.WaitForDoorState(ctx, doorID, action.TargetState(), timeout)
	if err != nil {
		fmt.Printf("Error waiting for door: %v\n", err)
		os.Exit(1)
	}
	if !reached {
		fmt.Printf("Door did not reach %s within %s.\n", action.TargetState(), timeout)
		os.Exit(1)
	}
	fmt.Printf("Door is now %s (took %s).\n", action.TargetState(), time.Since(start).Round(time.Millisecond))
}

func parseDoorID(arg string) int {
	doorID, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Printf("Invalid door id '%s': must be a number\n", arg)
		os.Exit(1)
	}
	return doorID
}

func getClient() *somweb.Client {
	var (
		client *somweb.Client
		err    error
	)
	switch {
	case gatewayURL != "":
		client, err = somweb.NewClient(gatewayURL, username, password)
	case gatewayUDI != "":
		client, err = somweb.NewClientFromUDI(gatewayUDI, username, password)
	default:
		fmt.Println("Gateway address required. Use --url or --udi.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error creating client: %v\n", err)
		os.Exit(1)
	}
	return client
}

func getAuthenticated() (*somweb.Client, somweb.AuthResult) {
	client := getClient()
	auth, err := client.Authenticate(context.Background())
	if err != nil {
		fmt.Printf("Error authenticating: %v\n", err)
		os.Exit(1)
	}
	if !auth.Success {
		fmt.Println("Authentication failed.")
		os.Exit(1)
	}
	return client, auth
}
