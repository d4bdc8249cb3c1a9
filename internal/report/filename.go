package report

import "strings"

// fallbackClient is used whenever the record carries no usable client name.
const fallbackClient = "Client"

// DeriveFilename builds the artifact name from the record's lookup-valued
// client name and the period label: the client's surname (last whitespace
// token), an underscore, and the label with spaces turned into hyphens.
// "Jane Doe" + "June 2025" gives "Doe_June-2025.html".
func DeriveFilename(clientName []string, periodLabel string) string {
	var parts []string
	for _, p := range clientName {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	full := strings.Join(parts, " ")

	surname := fallbackClient
	if tokens := strings.Fields(full); len(tokens) > 0 {
		surname = tokens[len(tokens)-1]
	}

	label := strings.ReplaceAll(periodLabel, " ", "-")
	return surname + "_" + label + ".html"
}
