package normalize

// TemplateFunc renders a tool-specific prompt around the user's text.
type TemplateFunc func(text string) string

// defaultTool is used when the tool identifier is absent or unrecognized.
const defaultTool = "AI Assistant"

// templates maps tool identifiers to prompt templates. Initialized once,
// never mutated.
var templates = map[string]TemplateFunc{
	"Essay Writer": func(m string) string {
		return "Write a well-structured essay based on the following prompt. Use clear paragraphs and a strong conclusion.\n\nPrompt:\n" + m
	},
	"Math Solver": func(m string) string {
		return "Solve the following math problem step-by-step and give the final answer:\n\n" + m
	},
	"Code Generator": func(m string) string {
		return "Write a clean, runnable code snippet that accomplishes the request below. Include short comments and explain any assumptions.\n\nRequest: " + m
	},
	"Image Description": func(m string) string {
		return "Create a detailed textual description suitable as a prompt for an image generator. Be vivid and specific:\n\n" + m
	},
	"Email Writer": func(m string) string {
		return "Write a concise, polite professional email based on the following instructions:\n\n" + m
	},
	"Chatbot Tutor": func(m string) string {
		return "You are a helpful tutor. Have a friendly, instructive conversation with the user based on: " + m
	},
	"Summarizer": func(m string) string {
		return "Summarize the following text into 5 concise bullet points:\n\n" + m
	},
	"Translator": func(m string) string {
		return "Translate the following text exactly as requested (preserve meaning):\n\n" + m
	},
	"Career Advisor": func(m string) string {
		return "Act as a career advisor. Provide practical steps, skills to learn, and next actions for: " + m
	},
	"Health Tips": func(m string) string {
		return "Give safe general health advice and tips (not medical diagnosis) for: " + m
	},
	"Motivation Coach": func(m string) string {
		return "Provide an encouraging motivational message and 3 actionable steps for: " + m
	},
	"Business Ideas": func(m string) string {
		return "Provide 10 short startup or side-business ideas around: " + m + ". For each idea give a one-line rationale."
	},
	"Poem Creator": func(m string) string {
		return "Write a short poem (3-4 stanzas) inspired by: " + m
	},
	"Story Generator": func(m string) string {
		return "Write a short story (about 400 words) inspired by: " + m
	},
	"Grammar Corrector": func(m string) string {
		return "Correct and improve the grammar, clarity, and flow of the text below. Keep meaning the same:\n\n" + m
	},
	"Study Planner": func(m string) string {
		return "Create a 4-week study plan with weekly goals and daily tasks for: " + m
	},
	"Research Helper": func(m string) string {
		return "Give a research plan, key topics, and 5 academic sources/keywords for: " + m
	},
	"Lesson Explainer": func(m string) string {
		return "Explain the topic like a teacher would to a student. Use simple language and examples:\n\n" + m
	},
	"Financial Guide": func(m string) string {
		return "Provide a high-level financial guide or tips for: " + m
	},
	defaultTool: func(m string) string {
		return "Act as a helpful AI assistant for the following request:\n\n" + m
	},
}

// ResolveTemplate returns the template for the given tool identifier, falling
// back to the generic assistant template for unknown or empty identifiers.
func ResolveTemplate(toolID string) TemplateFunc {
	if fn, ok := templates[toolID]; ok {
		return fn
	}
	return templates[defaultTool]
}

// KnownTools returns the number of registered tool templates.
func KnownTools() int {
	return len(templates)
}
