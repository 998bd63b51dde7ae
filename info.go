package redisclient

import (
	"strconv"
	"strings"

	"redisclient/wire"
)

// ServerInfo holds the fields of an INFO reply. Fields the struct does not
// name explicitly are kept in Fields, keyed by their wire name.
type ServerInfo struct {
	Version                  string
	UptimeSeconds            int64
	UptimeDays               int64
	ConnectedClients         int64
	ConnectedSlaves          int64
	UsedMemory               int64
	ChangesSinceLastSave     int64
	BGSaveInProgress         bool
	LastSaveTime             int64
	TotalConnectionsReceived int64
	TotalCommandsProcessed   int64
	Role                     string

	Fields map[string]string
}

// Info fetches and parses the server's INFO report.
func (c *Client) Info() (*ServerInfo, error) {
	reply, err := c.do(wire.TypeBulk, "INFO")
	if err != nil {
		return nil, err
	}
	if reply.Null {
		return nil, &wire.ProtocolError{Message: "null INFO reply"}
	}
	return parseInfo(reply.Bulk), nil
}

// parseInfo reads the "name:value" lines of an INFO payload. Unknown lines
// are preserved in Fields rather than rejected, so newer servers with
// extra fields still parse.
func parseInfo(data []byte) *ServerInfo {
	info := &ServerInfo{Fields: make(map[string]string)}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		info.Fields[name] = value

		switch name {
		case "redis_version":
			info.Version = value
		case "uptime_in_seconds":
			info.UptimeSeconds = parseInfoInt(value)
		case "uptime_in_days":
			info.UptimeDays = parseInfoInt(value)
		case "connected_clients":
			info.ConnectedClients = parseInfoInt(value)
		case "connected_slaves":
			info.ConnectedSlaves = parseInfoInt(value)
		case "used_memory":
			info.UsedMemory = parseInfoInt(value)
		case "changes_since_last_save":
			info.ChangesSinceLastSave = parseInfoInt(value)
		case "bgsave_in_progress":
			info.BGSaveInProgress = value == "1"
		case "last_save_time":
			info.LastSaveTime = parseInfoInt(value)
		case "total_connections_received":
			info.TotalConnectionsReceived = parseInfoInt(value)
		case "total_commands_processed":
			info.TotalCommandsProcessed = parseInfoInt(value)
		case "role":
			info.Role = value
		}
	}
	return info
}

func parseInfoInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
