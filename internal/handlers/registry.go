package handlers

// AppHandlers holds every HTTP handler.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CompanyHandler      *CompanyHandler
	ReviewHandler       *ReviewHandler
	SalaryHandler       *SalaryHandler
	SearchHandler       *SearchHandler
	AdminHandler        *AdminHandler
	SettingsHandler     *SettingsHandler
	IntegrationsHandler *IntegrationsHandler
}
