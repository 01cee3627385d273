package notify

import (
	"fmt"
	"html"
	"strings"

	"invite-bot/internal/models"
)

const SummarySubject = "Data Access Team Invitation Update"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// ComposeHTML renders the invited responses as an HTML table for the
// platform message body.
func ComposeHTML(invited []models.Response) string {
	var b strings.Builder
	b.WriteString("<p>Dear Admin,</p>")
	b.WriteString("<p>This is an automated notification to inform you that the following responses " +
		"have been invited to join the data access team:</p>")
	b.WriteString("<table border='1' cellpadding='5' cellspacing='0' style='border-collapse: collapse;'>")
	b.WriteString("<thead><tr>" +
		"<th>Timestamp</th><th>Username</th><th>User ID</th><th>Team</th>" +
		"</tr></thead><tbody>")
	for _, r := range invited {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(orNA(r.SubmittedAt)),
			html.EscapeString(orNA(r.IdentityClaim)),
			html.EscapeString(orNA(r.AccountID)),
			html.EscapeString(orNA(r.Team)))
	}
	b.WriteString("</tbody></table>")
	b.WriteString("<p>Best regards,<br/>The Challenge Automation</p>")
	return b.String()
}

// ComposeText renders the same summary as plain text for chat delivery.
func ComposeText(invited []models.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nInvited %d respondent(s):\n", SummarySubject, len(invited))
	for _, r := range invited {
		fmt.Fprintf(&b, "- %s (%s) team=%s at %s\n",
			orNA(r.IdentityClaim), orNA(r.AccountID), orNA(r.Team), orNA(r.SubmittedAt))
	}
	return b.String()
}
