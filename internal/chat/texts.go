package chat

// Interface texts shared by the shells
const (
	Title       = "BharatGPT"
	Subtitle    = "सरकारी योजनाओं के बारे में जानकारी पाएँ | Get information about government schemes"
	Placeholder = "सरकारी योजना के बारे में पूछें... | Ask about a government scheme..."
	FooterText  = "BharatGPT - सरकारी योजनाओं के बारे में जानकारी प्राप्त करें | Get information about government schemes"
	Copyright   = "© 2025 BharatGPT"
)
