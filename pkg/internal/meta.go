package pkg

const (
	AppName    = "Glimpse"
	AppVersion = "1.0.0"
)
