package bot

import (
	"fmt"
	"strings"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

const (
	replyStart = "🤖 Olá! Me envie seus gastos em texto livre, por exemplo:\n\n" +
		"Padaria 12,50 pix\n\n" +
		"Comandos:\n" +
		"/total — total registrado\n" +
		"/categorias — total por categoria\n" +
		"/resumo — visão geral\n" +
		"/ajuda — esta mensagem"

	replyHelp = "📋 Envie uma mensagem com o gasto, valor e forma de pagamento, por exemplo:\n\n" +
		"Mercado 85,30 cartão\n" +
		"Farmacia 23 dinheiro 01/03/2024\n\n" +
		"Use /total, /categorias ou /resumo para consultar."

	replyNoAmount = "🤔 Não encontrei um valor na mensagem.\n" +
		"Exemplo: Padaria 12,50 pix"

	replyRegisterFailure = "😕 Desculpe, não consegui registrar seu gasto agora. Tente novamente em instantes."

	replySummaryFailure = "😕 Desculpe, não consegui consultar os gastos agora. Tente novamente em instantes."

	replyUnknownCommand = "🤷 Comando desconhecido. Use /ajuda para ver as opções."

	replyNoExpenses = "📭 Nenhum gasto registrado ainda."
)

func formatConfirmation(rec core.Record) string {
	return fmt.Sprintf("✅ %s, gasto registrado!\n💰 R$%s\n📂 %s\n📅 %s\n💳 %s\n📝 %s",
		rec.UserName,
		rec.Amount.String(),
		rec.Category,
		rec.OccurredOn.String(),
		orDash(rec.PaymentMethod),
		orDash(rec.Notes))
}

func formatTotal(s core.Summary) string {
	if len(s.ByCategory) == 0 {
		return replyNoExpenses
	}
	return fmt.Sprintf("💰 Total registrado: R$%s", s.Total.String())
}

func formatCategories(s core.Summary) string {
	if len(s.ByCategory) == 0 {
		return replyNoExpenses
	}
	var b strings.Builder
	b.WriteString("📂 Gastos por categoria:\n")
	for _, ct := range s.ByCategory {
		fmt.Fprintf(&b, "• %s: R$%s\n", ct.Name, ct.Amount.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatOverview(s core.Summary) string {
	if len(s.ByCategory) == 0 {
		return replyNoExpenses
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumo de gastos\n💰 Total: R$%s\n\n", s.Total.String())
	for _, ct := range s.ByCategory {
		fmt.Fprintf(&b, "• %s: R$%s\n", ct.Name, ct.Amount.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
