// Package prompt renders the three prompt variants used by the generation
// pipeline. Rendering is deterministic: same inputs, same string. Every
// optional profile field has a textual fallback, so a rendered prompt is
// always well-formed regardless of how sparse the profile is.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gigbid/server/internal/models"
)

// Bid renders the prompt for initial bid generation. The project title and
// the client's proposal are embedded verbatim.
func Bid(projectTitle, proposal string, p models.Profile) string {
	return fmt.Sprintf(`
PROJECT: %s

CLIENT'S REQUIREMENTS:
%s

MY CREDENTIALS:
- Name: %s
- Skills: %s
- Experience: %s
- Rate: $%s/hour
- About: %s

---

Analyze this project and write a WINNING bid. Focus on:
1. What specific problem does the client want solved?
2. What exact deliverables do they need?
3. What concerns might they have?
4. How can I show I'm the RIGHT person for THIS project?

Write the bid now:`,
		projectTitle,
		proposal,
		fallback(p.Name, "Professional Freelancer"),
		skillList(p.Skills, "Relevant technical skills"),
		fallback(p.Experience, "Experienced in similar projects"),
		rate(p.HourlyRate),
		fallback(p.Bio, "Dedicated professional"),
	)
}

// Answer renders the prompt for one screening question.
func Answer(project models.MarketProject, q models.ProjectQuestion, p models.Profile) string {
	required := ""
	if q.IsRequired {
		required = "(This is a required question)"
	}

	return fmt.Sprintf(`
PROJECT DETAILS:
Title: %s
Description: %s
Budget: $%s - $%s (%s)
Required Skills: %s
Project Type: %s

YOUR PROFILE:
Skills: %s
Experience: %s
Hourly Rate: $%s/hour
Bio: %s

QUESTION TO ANSWER:
%s
%s

Please provide a professional, compelling answer that:
1. Directly addresses the question
2. Highlights relevant skills and experience from the profile
3. Shows understanding of the project requirements
4. Is concise but comprehensive (2-4 paragraphs max)
5. Demonstrates enthusiasm and professionalism
6. Avoids generic or templated responses

Answer:`,
		project.Title,
		project.Description,
		rate(project.Budget.Min),
		rate(project.Budget.Max),
		project.Budget.Currency,
		strings.Join(project.Skills, ", "),
		project.Type,
		strings.Join(p.Skills, ", "),
		fallback(p.Experience, "Not specified"),
		rate(p.HourlyRate),
		fallback(p.Bio, "Not specified"),
		q.Question,
		required,
	)
}

// Reply renders the prompt for a negotiation reply. History messages are
// rendered as alternating CLIENT:/ME: lines in the order given, before the
// latest client message.
func Reply(projectTitle, proposal, initialBid, clientMessage string, history []models.Message, p models.Profile) string {
	historyText := ""
	if len(history) > 0 {
		var sb strings.Builder
		sb.WriteString("\nPREVIOUS CONVERSATION:\n")
		for i, m := range history {
			if i > 0 {
				sb.WriteString("\n")
			}
			speaker := "ME"
			if m.Type == models.MessageClient {
				speaker = "CLIENT"
			}
			sb.WriteString(speaker)
			sb.WriteString(": ")
			sb.WriteString(m.Content)
		}
		historyText = sb.String()
	}

	return fmt.Sprintf(`
PROJECT: %s

ORIGINAL PROPOSAL: %s

MY INITIAL BID: %s
%s

CLIENT'S LATEST REPLY:
%s

MY PROFILE:
- Name: %s
- Skills: %s
- Experience: %s

Write my reply to continue the conversation and move closer to winning this project:`,
		projectTitle,
		proposal,
		initialBid,
		historyText,
		clientMessage,
		fallback(p.Name, "Freelancer"),
		skillList(p.Skills, "Various skills"),
		fallback(p.Experience, "Experienced"),
	)
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func skillList(skills []string, def string) string {
	if len(skills) == 0 {
		return def
	}
	return strings.Join(skills, ", ")
}

// rate formats a dollar amount without trailing zeros, matching how the
// dashboard displays rates.
func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
