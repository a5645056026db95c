package generation

import (
	"fmt"
	"strings"
)

// systemPrompt instructs the model to produce the three-section infographic
// document. The JSON keys here must stay in sync with generatedDocument.
const systemPrompt = `You are an expert research communicator who transforms academic papers into engaging, accessible infographics.
Your task is to analyze research papers and create structured content following the research infographic format.

Generate content for THREE distinct sections:

**Section A - Overview (for general audience):**
- A thought-provoking, engaging title (not just the paper title)
- A clear 2-3 sentence summary explaining what the research is about
- 3-5 key statistics with specific numbers and labels
- List of academic sources/citations
- 2-3 main conclusions in simple language

**Section B - Methods (for researchers):**
- Study methodology explained clearly
- Number and description of participants
- List of 3-5 key technical terms used in the research
- Overall study design approach

**Section C - Solutions (3-5 separate action pages for laypeople):**
Create 3-5 distinct "HERE'S WHAT YOU CAN DO" solution pages, each with:
- A numbered badge (1, 2, 3, etc.)
- An action-oriented title (e.g., "Take Movement Breaks Every Hour")
- 3-5 specific, practical steps anyone can implement

Each solution page should address different aspects of applying the research to daily life.
Think: "Sitting is the new smoking" -> Multiple solution pages like "Desk Exercises", "Walking Meetings", "Posture Tips", etc.

Respond ONLY with valid JSON matching this structure - no markdown, no explanations.`

// buildUserPrompt assembles the per-submission prompt.
func buildUserPrompt(researchText, researcherNotes string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze this research paper and generate infographic content:\n\n%s\n", researchText)

	if researcherNotes != "" {
		fmt.Fprintf(&b, "\nAdditional context from researcher: %s\n", researcherNotes)
	}

	b.WriteString("\nGenerate structured infographic content in JSON format with sectionA, sectionB, and sectionC as described.")

	return b.String()
}
