package classify

import "fmt"

// All prompts and canned replies are fixed to Brazilian Portuguese, the
// output language of the product, regardless of the input language.

const (
	classifyModel = "gpt-4o-mini"
	respondModel  = "gpt-3.5-turbo"

	classifySystemPrompt = "Você é um assistente especializado em classificar emails em português brasileiro. " +
		"Responda APENAS com JSON válido, sem texto adicional."

	respondSystemPrompt = "Você é um assistente que gera respostas profissionais para emails em português brasileiro."

	cannedReplyProductive   = "Olá! Recebemos sua mensagem e nossa equipe irá analisá-la. Retornaremos em breve. Obrigado!"
	cannedReplyUnproductive = "Muito obrigado pela sua mensagem! Ficamos felizes com seu contato."
)

func classifyPrompt(text string) string {
	return fmt.Sprintf(`Analise o seguinte email e classifique-o como "Produtivo" ou "Improdutivo":

- Produtivo: emails que requerem ação, contêm dúvidas, problemas, solicitações, ou necessitam resposta
- Improdutivo: emails de agradecimento, parabenizações, confirmações simples que não requerem ação

Email: "%s"

Responda em formato JSON com exatamente três campos e nada mais:
- category: "Produtivo" ou "Improdutivo"
- confidence: número entre 0 e 1
- reasoning: breve explicação da classificação`, text)
}

func respondProductivePrompt(text string) string {
	return fmt.Sprintf(`Gere uma resposta profissional e empática para este email produtivo (que requer ação):

Email: "%s"

A resposta deve:
- Ser em português brasileiro
- Ser profissional e cordial
- Confirmar recebimento
- Indicar próximos passos
- Ter no máximo 100 palavras`, text)
}

func respondUnproductivePrompt(text string) string {
	return fmt.Sprintf(`Gere uma resposta cordial para este email improdutivo (agradecimento/parabenização):

Email: "%s"

A resposta deve:
- Ser em português brasileiro
- Ser calorosa e agradecida
- Reconhecer o feedback positivo
- Ter no máximo 50 palavras`, text)
}
