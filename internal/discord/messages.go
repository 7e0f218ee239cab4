package discord

// Friendly message constants for Discord responses
const (
	MsgLoginFirst     = "🔒 **Sessão necessária**\nEntre com `/login` ou crie uma conta com `/register`."
	MsgSessionExpired = "⌛ **Sessão expirada**\nEntre novamente com `/login`."
	MsgNotAdmin       = "⛔ **Acesso negado**\nSomente administradores podem usar este comando."
	MsgCancelled      = "Cancelado."
	MsgBusy           = "⏳ Aguarde a ação anterior terminar."
	MsgGenericError   = "❌ Algo deu errado."
	MsgLoggedOut      = "👋 Sessão encerrada."
	MsgNoRows         = "_Nenhum registro._"
)

// Embed colors
const (
	ColorInfo    = 0x3B82F6
	ColorSuccess = 0x22C55E
	ColorWarning = 0xF59E0B
	ColorDanger  = 0xEF4444
	ColorAdmin   = 0x8B5CF6
)

// Button labels
const (
	LabelPrev    = "Anterior"
	LabelNext    = "Próxima"
	LabelConfirm = "Confirmar"
	LabelCancel  = "Cancelar"
)

const footerText = "DoofiCoin Game"
