package diagnose

import (
	"fmt"
	"strings"
)

// GenericPattern is reported when no known pattern matches the log.
const GenericPattern = "generic"

type Diagnosis struct {
	Pattern string `json:"pattern"`
	Title   string `json:"title"`
	Fix     string `json:"fix"`
	Lang    string `json:"lang"`
}

type rule struct {
	pattern string
	title   string
	fix     string
}

// rules are matched in order; the first hit wins.
var rules = []rule{
	{"connection refused", "Connection Refused", "Check that the service is running and listening on the expected port."},
	{"permission denied", "Permission Denied", "Check file permissions with `ls -la` or run with the required privileges."},
	{"out of memory", "Out of Memory", "Raise the memory limit, reduce memory usage or add swap."},
	{"command not found", "Command Not Found", "Install the package or add its directory to PATH."},
	{"port already in use", "Port Already in Use", "Find the process holding the port with `lsof -i :PORT` and stop it."},
	{"timeout", "Timeout Error", "Check network connectivity or increase the timeout."},
	{"file not found", "File Not Found", "Check the path and its spelling."},
	{"syntax error", "Syntax Error", "Check the reported line for missing brackets, quotes or colons."},
}

var headers = map[string]string{
	"en": "Error Analysis",
	"si": "Error විශ්ලේෂණය",
}

// Explain classifies an error log by substring match, case-insensitive.
func Explain(errorLog, lang string) Diagnosis {
	if _, ok := headers[lang]; !ok {
		lang = "en"
	}
	lower := strings.ToLower(errorLog)
	for _, r := range rules {
		if strings.Contains(lower, r.pattern) {
			return Diagnosis{Pattern: r.pattern, Title: r.title, Fix: r.fix, Lang: lang}
		}
	}
	return Diagnosis{
		Pattern: GenericPattern,
		Title:   "Unrecognised error",
		Fix:     "Read the message carefully, check the line numbers it mentions and search for the exact text.",
		Lang:    lang,
	}
}

// Patterns lists the recognised patterns in match order.
func Patterns() []string {
	result := make([]string, 0, len(rules))
	for _, r := range rules {
		result = append(result, r.pattern)
	}
	return result
}

func (d Diagnosis) String() string {
	header, ok := headers[d.Lang]
	if !ok {
		header = headers["en"]
	}
	return fmt.Sprintf("%s\n\n%s\n\nFix: %s", header, d.Title, d.Fix)
}
