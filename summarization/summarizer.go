package summarization

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-emberai/processor"
	"go-emberai/types"
)

const maxFiresForReport = 15
const maxPromptLength = 15000 // Rough character limit for prompt

// GenerateSituationReport builds a one-paragraph operational summary of the
// given fires via OpenAI. Fires beyond maxFiresForReport are left out of the
// prompt; the biggest, least contained incidents should be passed first.
func GenerateSituationReport(ctx context.Context, fires []types.FirePerimeter, client *openai.Client) (string, error) {
	if len(fires) == 0 {
		return "", fmt.Errorf("no fires to report on")
	}

	briefing := buildBriefing(fires)
	log.Printf("Requesting situation report from OpenAI for %d fires...", len(fires))

	prompt := fmt.Sprintf("Write a concise wildfire situation report (3-4 sentences maximum) from the following incident briefing. Focus on the largest and least contained fires, the states affected, and overall ember spotfire risk. Do not invent incidents that are not in the briefing:\n\n---\n%s\n---\n\nSituation report:", briefing)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that writes concise wildfire situation reports for emergency planners.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   200,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)

	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildBriefing renders one line per fire with its risk level and the
// report-path danger radius.
func buildBriefing(fires []types.FirePerimeter) string {
	var lines []string

	for i, fire := range fires {
		if i >= maxFiresForReport {
			log.Printf("Reached max fire limit (%d) for situation report.", maxFiresForReport)
			break
		}

		name := fire.IncidentName
		if name == "" {
			name = "Unnamed fire"
		}

		risk := processor.AssessEmberRisk(fire.Acres, fire.Containment)
		radius := processor.ReportDangerRadiusMiles(fire.Acres, fire.Containment)
		lines = append(lines, fmt.Sprintf("%s (%s): %.0f acres, %d%% contained, risk %s, danger radius %.1f mi",
			name, fire.State, fire.Acres, fire.Containment, risk.Level, radius))
	}

	combined := strings.Join(lines, "\n")
	if len(combined) > maxPromptLength {
		log.Printf("Warning: briefing exceeds max length (%d), truncating.", maxPromptLength)
		combined = combined[:maxPromptLength]
	}
	return combined
}
