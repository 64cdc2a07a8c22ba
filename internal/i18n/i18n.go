package i18n

// Locale holds every user-facing string for one language. Templates are
// fmt-style format strings; handlers fill them in.
type Locale struct {
	// Keyboard labels
	BtnStatus string
	BtnLink   string
	BtnTrial  string
	BtnBuy    string
	BtnHelp   string
	BtnAbout  string

	// Messages
	Welcome             string
	Connected           string
	ConnectionFailed    string
	Help                string
	About               string
	NoSubscription      string
	SubscriptionExpired string
	SubscribeUsage      string
	AskDuration         string
	InvalidDuration     string
	Extended            string // %d days
	Created             string // uuid
	TrialGranted        string // %d days
	TrialUsed           string
	NoInbounds          string
	LinkMessage         string // link
	InfoMessage         string // status, expiry, up, down
	StatusActive        string
	StatusExpired       string
	Unlimited           string
	ListHeader          string
	ListEmpty           string
	GenericError        string
	PanelErrorPrefix    string // %s
	PaymentThanks       string // %d days
	InvoiceTitle        string
	InvoiceDescription  string // %d days
}

var locales = map[string]*Locale{
	"en": {
		BtnStatus: "📊 My Status",
		BtnLink:   "🔗 Get VPN Link",
		BtnTrial:  "🎁 Free Trial",
		BtnBuy:    "🗓 1 Month Plan",
		BtnHelp:   "❓ How to start",
		BtnAbout:  "ℹ️ About Us",

		Welcome: "👋 <b>Welcome!</b>\n\n" +
			"We provide VPN keys for fast and secure access using the <b>VLESS</b> protocol. " +
			"Simply paste the key into your VPN application.\n\n" +
			"📍 The menu is located in your keyboard (☰) — select a section below or get your VPN link instantly.",
		Connected:        "✅ Connected to the panel",
		ConnectionFailed: "❌ Connection failed. Please try again later.",
		Help: "<b>Available commands:</b>\n\n" +
			"/start — Check the panel connection\n" +
			"/subscribe &lt;days&gt; — Activate or extend a subscription\n" +
			"/get — Get the VLESS connection link\n" +
			"/info — Check subscription status and traffic\n" +
			"/list — Show available servers\n" +
			"/help — Show this message",
		About:               "We provide fast and secure VLESS VPN access.",
		NoSubscription:      "❌ You have no active subscription. Use /subscribe",
		SubscriptionExpired: "❌ Your subscription has expired. Extend it to regain access.",
		SubscribeUsage:      "Usage: /subscribe <days>",
		AskDuration:         "For how many days? Send a number.",
		InvalidDuration:     "❌ Invalid duration: %s",
		Extended:            "✅ Subscription extended by %d days.",
		Created:             "✅ Subscribed! Your ID:\n<code>%s</code>",
		TrialGranted:        "🎁 Trial activated for %d days. Use /get for your link.",
		TrialUsed:           "❌ The free trial is only available once.",
		NoInbounds:          "❌ No inbounds found.",
		LinkMessage: "🔗 <b>Your connection link:</b>\n\n<code>%s</code>\n\n" +
			"<i>Tap the link above to copy it.</i>",
		InfoMessage: "<b>Subscription info:</b>\n" +
			"Status: %s\n\n" +
			"📅 Expires: <code>%s</code>\n" +
			"🔼 Uploaded: <code>%s</code>\n" +
			"🔽 Downloaded: <code>%s</code>\n\n" +
			"<i>To extend, use /subscribe [days]</i>",
		StatusActive:       "✅ <b>ACTIVE</b>",
		StatusExpired:      "❌ <b>EXPIRED</b>",
		Unlimited:          "Unlimited",
		ListHeader:         "Available VPNs:\n%s",
		ListEmpty:          "No VPN connections available.",
		GenericError:       "❌ Failed to fetch fresh information.",
		PanelErrorPrefix:   "❌ Error: %s",
		PaymentThanks:      "✅ Payment received! Subscription extended by %d days.",
		InvoiceTitle:       "VPN subscription",
		InvoiceDescription: "VLESS VPN access for %d days",
	},
	"ru": {
		BtnStatus: "📊 Мой статус",
		BtnLink:   "🔗 Ссылка VPN",
		BtnTrial:  "🎁 Пробный период",
		BtnBuy:    "🗓 1 месяц",
		BtnHelp:   "❓ Как начать",
		BtnAbout:  "ℹ️ О нас",

		Welcome: "👋 <b>Добро пожаловать!</b>\n\n" +
			"Мы предоставляем VPN ключи для быстрого и безопасного доступа по протоколу <b>VLESS</b>. " +
			"Просто вставьте ключ в ваше VPN-приложение.\n\n" +
			"📍 Меню находится в вашей клавиатуре (☰) — выберите раздел ниже или получите ссылку мгновенно.",
		Connected:        "✅ Подключение к панели установлено",
		ConnectionFailed: "❌ Ошибка подключения. Попробуйте позже.",
		Help: "<b>Доступные команды:</b>\n\n" +
			"/start — Проверить соединение с панелью\n" +
			"/subscribe &lt;days&gt; — Активировать или продлить подписку\n" +
			"/get — Получить ссылку для подключения (VLESS)\n" +
			"/info — Проверить статус подписки и трафик\n" +
			"/list — Показать доступные серверы\n" +
			"/help — Показать это сообщение",
		About:               "Мы предоставляем быстрый и безопасный VPN по протоколу VLESS.",
		NoSubscription:      "❌ У вас нет активной подписки. Используйте /subscribe",
		SubscriptionExpired: "❌ Ваша подписка истекла. Продлите её, чтобы получить доступ.",
		SubscribeUsage:      "Использование: /subscribe <дни>",
		AskDuration:         "На сколько дней? Отправьте число.",
		InvalidDuration:     "❌ Неверная длительность: %s",
		Extended:            "✅ Подписка продлена на %d дн.",
		Created:             "✅ Подписка оформлена! Ваш ID:\n<code>%s</code>",
		TrialGranted:        "🎁 Пробный период активирован на %d дн. Ссылка — /get",
		TrialUsed:           "❌ Пробный период доступен только один раз.",
		NoInbounds:          "❌ Серверы не найдены.",
		LinkMessage: "🔗 <b>Ваша ссылка для подключения:</b>\n\n<code>%s</code>\n\n" +
			"<i>Нажмите на ссылку выше, чтобы скопировать её.</i>",
		InfoMessage: "<b>Информация о подписке:</b>\n" +
			"Статус: %s\n\n" +
			"📅 Истекает: <code>%s</code>\n" +
			"🔼 Отправлено: <code>%s</code>\n" +
			"🔽 Загружено: <code>%s</code>\n\n" +
			"<i>Чтобы продлить, используйте /subscribe [дни]</i>",
		StatusActive:       "✅ <b>АКТИВНА</b>",
		StatusExpired:      "❌ <b>ИСТЕКЛА</b>",
		Unlimited:          "Бессрочно",
		ListHeader:         "Доступные VPN:\n%s",
		ListEmpty:          "Нет доступных VPN подключений.",
		GenericError:       "❌ Не удалось получить свежую информацию.",
		PanelErrorPrefix:   "❌ Ошибка: %s",
		PaymentThanks:      "✅ Платёж получен! Подписка продлена на %d дн.",
		InvoiceTitle:       "VPN подписка",
		InvoiceDescription: "Доступ к VLESS VPN на %d дн.",
	},
}

// Get returns the locale for a Telegram language code, defaulting to English
func Get(languageCode string) *Locale {
	if loc, ok := locales[languageCode]; ok {
		return loc
	}
	return locales["en"]
}

// All returns every known locale, for matching keyboard button presses
// regardless of the sender's current language.
func All() []*Locale {
	all := make([]*Locale, 0, len(locales))
	for _, loc := range locales {
		all = append(all, loc)
	}
	return all
}
