package answer

import "fmt"

// The system instruction pins the model to the single resolved document and
// mandates the fixed refusal phrase the hallucination guard recognizes.
const answerSystemPrompt = `Eres un asistente que responde preguntas basadas ÚNICAMENTE en el documento: %s

REGLAS:
1. Solo responde con información del documento
2. Si no encuentras la respuesta, di: "No encontré esta información en el documento"
3. NUNCA cites otros documentos
4. Sé conciso`

func buildSystemPrompt(docName string) string {
	return fmt.Sprintf(answerSystemPrompt, docName)
}

func buildUserPrompt(docText, question string) string {
	return fmt.Sprintf("Documento:\n%s\n\nPregunta: %s", docText, question)
}
