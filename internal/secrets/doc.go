// Package secrets provides regex-based secret detection used by the skill
// parser's non-fatal security scan: API-key-like literals, private key
// headers, and cloud provider key prefixes found in skill examples are
// reported as warnings, never as parse failures.
package secrets
