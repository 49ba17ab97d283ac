// Package version provides version information for the crypto-price-mcp-server application.
package version

// Version is the current version of the crypto-price-mcp-server application.
const Version = "1.0.0"

// AgentString returns the full agent string with versioning.
// Format: crypto-price-mcp-server/v{version}
func AgentString() string {
	return "crypto-price-mcp-server/v" + Version
}
