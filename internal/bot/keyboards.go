package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/core/telegram/keyboard"
	"github.com/jamshidbekman/rivojbot/internal/admin"
	"github.com/jamshidbekman/rivojbot/internal/conversation"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/reply"
)

// Reply-keyboard labels.
const (
	BtnPrices    = "💰 Narxlar"
	BtnHelp      = "ℹ️ Yordam"
	BtnPortfolio = "📊 Portfolio"
	BtnPromo     = "🎁 Aksiyalar"
	BtnContact   = "📲 Kontaktni yuborish"
	BtnCancel    = "🔙 Bekor qilish"
	BtnBackMenu  = "🔙 Asosiy menyu"
	BtnHome      = "🏠 Asosiy menyu"
)

// Inline callback keys.
const (
	CbOfferView      = "offer_view"
	CbOfferDetails   = "offer_details"
	CbContactNow     = "send_contact_now"
	CbBackToProblems = "back_to_problems"
	CbPackages       = "view_packages"
	CbPrices         = "view_prices"
	CbPortfolio      = "view_portfolio"
	CbReviews        = "view_reviews"
	CbContactAgain   = "send_contact_again"
	CbToMain         = "to_main"
	CbPriceFull      = "price_full"
	CbPriceBack      = "price_back"
)

func mainMenu() *tele.ReplyMarkup {
	rows := make([][]string, 0, 5)
	for i := 0; i < len(lead.Roles); i += 2 {
		row := []string{lead.Roles[i].Label()}
		if i+1 < len(lead.Roles) {
			row = append(row, lead.Roles[i+1].Label())
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		[]string{BtnPrices, BtnHelp},
		[]string{BtnPortfolio, BtnPromo},
	)
	return keyboard.ReplyButtons(rows...)
}

func problemButton(p lead.Problem) keyboard.InlineBtn {
	return keyboard.InlineBtn{Text: p.Label(), Unique: p.Key()}
}

func problemsMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{problemButton(lead.ProblemClients), problemButton(lead.ProblemSales)},
		[]keyboard.InlineBtn{problemButton(lead.ProblemBrand), problemButton(lead.ProblemIncome)},
		[]keyboard.InlineBtn{problemButton(lead.ProblemOther)},
	)
}

func offerActions() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📌 Taklifni ko'rish", Unique: CbOfferView},
			{Text: "❓ Batafsil ma'lumot", Unique: CbOfferDetails},
		},
		[]keyboard.InlineBtn{
			{Text: "📲 Kontakt yuborish", Unique: CbContactNow},
			{Text: "🔙 Orqaga", Unique: CbBackToProblems},
		},
	)
}

func afterContact() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📦 Paketlar", Unique: CbPackages},
			{Text: "💰 Narxlar", Unique: CbPrices},
		},
		[]keyboard.InlineBtn{
			{Text: "📊 Portfolio", Unique: CbPortfolio},
			{Text: "⭐ Mijozlar fikri", Unique: CbReviews},
		},
		[]keyboard.InlineBtn{
			{Text: "📲 Yana kontakt", Unique: CbContactAgain},
			{Text: "🏠 Asosiy menyu", Unique: CbToMain},
		},
	)
}

func pricesMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "💎 Mini - 500$+", Unique: conversation.PriceMini},
			{Text: "⭐ Standart - 1000$+", Unique: conversation.PriceStandard},
		},
		[]keyboard.InlineBtn{
			{Text: "👑 Premium - 3000$+", Unique: conversation.PricePremium},
		},
		[]keyboard.InlineBtn{
			{Text: "💰 To'liq narxlar", Unique: CbPriceFull},
			{Text: "🔙 Orqaga", Unique: CbPriceBack},
		},
	)
}

func contactRequest() *tele.ReplyMarkup {
	return keyboard.ContactRequest(BtnContact, []string{BtnCancel})
}

func adminMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📊 Statistika", Unique: admin.KeyStats},
			{Text: "📋 Barcha leadlar", Unique: admin.KeyLeads},
		},
		[]keyboard.InlineBtn{
			{Text: "📥 Export Excel", Unique: admin.KeyExport},
			{Text: "🔄 Yangilash", Unique: admin.KeyRefresh},
		},
	)
}

// markup builds a fresh keyboard per send; telebot mutates inline button
// data when a markup is sent.
func markup(kb reply.Keyboard) *tele.ReplyMarkup {
	switch kb {
	case reply.KeyboardMainMenu:
		return mainMenu()
	case reply.KeyboardProblems:
		return problemsMenu()
	case reply.KeyboardOfferActions:
		return offerActions()
	case reply.KeyboardAfterContact:
		return afterContact()
	case reply.KeyboardPrices:
		return pricesMenu()
	case reply.KeyboardContactRequest:
		return contactRequest()
	case reply.KeyboardAdmin:
		return adminMenu()
	default:
		return nil
	}
}
