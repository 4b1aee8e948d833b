package somweb

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrParse indicates that a gateway page did not contain the expected
// markup. This usually means the vendor changed the page layout.
var ErrParse = errors.New("unexpected page content")

// The gateway serves plain HTML pages rather than structured data, so all
// discovery is done by scraping. The patterns below were derived from the
// SOMweb index and device info pages.
var (
	reDoors = regexp.MustCompile(`<\s*input\s+type\s*=\s*"submit"\s+class\s*=\s*"tab-door[\s\w-]*"\s+name\s*=\s*"tab-door\d+"\s+id\s*=\s*"tab-door(?P<id>\d+)"\s+value="(?P<name>[\w\s]+)"\s*/?>`)

	reWebToken = regexp.MustCompile(`<\s*input\s+id\s*=\s*"webtoken".*value="(?P<webtoken>\w+)".*/>`)

	reUDI = regexp.MustCompile(`<meta name="UDI" content="(?P<udi>[0-9a-fA-F]+)" />`)

	reAdmin = regexp.MustCompile(`<a href=".*?index.php\?op=config"`)

	// Device info page (admin only).
	reRemoteAccess = regexp.MustCompile(`(?i)Remote Access:</div>\s*?</div>\s*?<div class=".*?">\s*<div class=".*?">(?P<remote_access>.*?)</div>`)
	reFirmware     = regexp.MustCompile(`(?i)Firmware version:</div>\s*?</div>\s*?<div class=".*?">\s*?<div class=".*?">(?P<firmware_version>.*?)</div>`)
	reIPAddress    = regexp.MustCompile(`(?i)IP Address:</div>\s*?</div>\s*?<div class=".*?">\s*?<div class=".*?">(?P<ip_address>.*?)</div>`)
	reWifiSignal   = regexp.MustCompile(`(?i)WiFi signal level:</div>\s*?</div>\s*?<div class=".*?">\s*?<div class=".*?">\s*<div class=.*?wifi-signal-(?P<quality>\d).*?">(?P<level>-?\d+) (?P<unit>.*?)</div>`)
	reTimeZone     = regexp.MustCompile(`(?i)Time zone:</div>\s*?</div>\s*?<div class=".*?">\s*?<div class=".*?">(?P<time_zone>.*?)</div>`)
)

// ExtractWebToken parses the webtoken out of an authenticated page body.
// The second return value is false if no token is present, which is how
// the gateway responds to rejected credentials.
func ExtractWebToken(page string) (string, bool) {
	m := reWebToken.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseDoors returns the doors listed on an authenticated page body, as
// returned in AuthResult.Page. An empty slice means no doors are configured.
func ParseDoors(page string) []Door {
	var doors []Door
	for _, m := range reDoors.FindAllStringSubmatch(page, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		doors = append(doors, Door{ID: id, Name: m[2]})
	}
	return doors
}

// UDIFromPage parses the gateway UDI out of an authenticated page body.
func UDIFromPage(page string) (string, bool) {
	m := reUDI.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsAdminPage reports whether an authenticated page body belongs to an
// administrator session. The config menu link only renders for admins.
func IsAdminPage(page string) bool {
	return reAdmin.MatchString(page)
}

func parseDeviceInfo(page string) (DeviceInfo, error) {
	fw := reFirmware.FindStringSubmatch(page)
	if fw == nil {
		return DeviceInfo{}, ErrParse
	}

	info := DeviceInfo{FirmwareVersion: fw[1]}

	if m := reRemoteAccess.FindStringSubmatch(page); m != nil {
		info.RemoteAccessEnabled = m[1] == "ENABLED"
	}
	if m := reIPAddress.FindStringSubmatch(page); m != nil {
		info.IPAddress = m[1]
	}
	if m := reWifiSignal.FindStringSubmatch(page); m != nil {
		info.WifiSignalQuality, _ = strconv.Atoi(m[1])
		info.WifiSignalLevel, _ = strconv.Atoi(m[2])
		info.WifiSignalUnit = m[3]
	}
	if m := reTimeZone.FindStringSubmatch(page); m != nil {
		info.TimeZone = m[1]
	}

	return info, nil
}
