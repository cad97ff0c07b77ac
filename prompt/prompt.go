// Package prompt renders dialect-specific generation prompts for the
// completion service. Each dialect carries exactly one template; the pairing
// with validator rule sets is checked at construction time.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zero-day-ai/huntgen/dialect"
)

// ErrEmptyDescription indicates the caller supplied a blank or
// whitespace-only threat description. This is caller-fixable and is raised
// before any model call is attempted.
var ErrEmptyDescription = errors.New("threat description is empty")

// Hint carries optional attack-technique context appended to the prompt.
type Hint struct {
	// TechniqueID is the stable technique identifier (e.g., "T1110").
	TechniqueID string

	// TechniqueName is the technique's display name.
	TechniqueName string

	// Detection is the technique's detection guidance.
	Detection string
}

// Options configures prompt construction.
type Options struct {
	// Hint, when non-nil, appends the matched technique's name and
	// detection guidance as extra context before generation.
	Hint *Hint
}

// template holds the dialect-specific parts of a generation prompt.
type template struct {
	role     string
	exemplar string
}

// Builder renders generation prompts. It is stateless and safe for
// concurrent use; Build is a pure function of its inputs.
type Builder struct {
	templates map[dialect.Dialect]template
}

// NewBuilder creates a prompt builder, verifying that every supported
// dialect has a template.
func NewBuilder() (*Builder, error) {
	b := &Builder{templates: map[dialect.Dialect]template{
		dialect.SPL: {
			role: "You are a cybersecurity expert specializing in Splunk SPL (Search Processing Language). " +
				"Convert the threat hunting description into a valid SPL query.",
			exemplar: "QUERY:\nindex=security sourcetype=windows EventCode=4625 earliest=-24h | stats count by user, src_ip\n" +
				"EXPLANATION:\nSearches the last 24 hours of Windows authentication failures (EventCode 4625) and counts them " +
				"by user and source IP to surface potential brute force activity.\n\n" +
				"QUERY:\nindex=endpoint sourcetype=sysmon EventCode=1 Image=*powershell.exe | table _time, host, CommandLine\n" +
				"EXPLANATION:\nLists PowerShell process creations from Sysmon data with their command lines for triage.",
		},
		dialect.KQL: {
			role: "You are a cybersecurity expert specializing in Kusto Query Language (KQL) for Microsoft Sentinel. " +
				"Convert the threat hunting description into a valid KQL query.",
			exemplar: "QUERY:\nSecurityEvent | where TimeGenerated > ago(24h) | where EventID == 4625 | summarize count() by TargetUserName, IpAddress\n" +
				"EXPLANATION:\nCounts Windows authentication failures (EventID 4625) in the last 24 hours by target user " +
				"and source IP to surface potential brute force activity.\n\n" +
				"QUERY:\nDeviceProcessEvents | where FileName =~ \"powershell.exe\" | project Timestamp, DeviceName, ProcessCommandLine\n" +
				"EXPLANATION:\nProjects PowerShell process creations with their command lines for triage.",
		},
		dialect.DSL: {
			role: "You are a cybersecurity expert specializing in Elasticsearch query DSL. " +
				"Convert the threat hunting description into a valid Elasticsearch DSL query document.",
			exemplar: "QUERY:\n{\"query\": {\"bool\": {\"must\": [{\"match\": {\"event.code\": \"4625\"}}], " +
				"\"filter\": [{\"range\": {\"@timestamp\": {\"gte\": \"now-24h\"}}}]}}, \"size\": 100}\n" +
				"EXPLANATION:\nMatches Windows authentication failure events (event.code 4625) from the last 24 hours, " +
				"capped at 100 results, to surface potential brute force activity.",
		},
	}}

	for _, d := range dialect.All() {
		if _, ok := b.templates[d]; !ok {
			return nil, fmt.Errorf("prompt: no template for dialect %s", d)
		}
	}
	return b, nil
}

// Build renders the generation prompt for a dialect and description.
// A blank description fails with ErrEmptyDescription before any model call.
func (b *Builder) Build(d dialect.Dialect, description string, opts Options) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}

	tpl, ok := b.templates[d]
	if !ok {
		return "", fmt.Errorf("prompt: no template for dialect %q", d)
	}

	var sb strings.Builder
	sb.WriteString(tpl.role)
	sb.WriteString("\n\nRespond with exactly two labeled blocks and nothing else:\n")
	sb.WriteString("QUERY:\n<the query>\nEXPLANATION:\n<what the query does and what it is looking for>\n")
	sb.WriteString("\nExample responses:\n\n")
	sb.WriteString(tpl.exemplar)
	sb.WriteString("\n")

	if h := opts.Hint; h != nil {
		sb.WriteString(fmt.Sprintf("\nRelevant ATT&CK technique: %s (%s)\nDetection guidance: %s\n",
			h.TechniqueName, h.TechniqueID, h.Detection))
	}

	sb.WriteString(fmt.Sprintf("\nDescription: %s\n", description))
	return sb.String(), nil
}
