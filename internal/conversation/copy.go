package conversation

import (
	"fmt"

	"github.com/jamshidbekman/rivojbot/core/telegram/format"
)

const divider = "━━━━━━━━━━━━━━━━━━━"

const defaultFirstName = "Foydalanuvchi"

func stepEmoji(s Step) string {
	emojis := []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "✅"}
	if i := int(s) - 1; i >= 0 && i < len(emojis) {
		return emojis[i]
	}
	return "🔹"
}

// header escapes title, so callers pass raw text.
func header(title string, s Step) string {
	return stepEmoji(s) + " " + format.Bold(title) + "\n\n"
}

func welcomeText(firstName string) string {
	return fmt.Sprintf("🎉 <b>Assalomu alaykum, %s!</b>\n\n", format.Escape(firstName)) +
		"Poʻlatjonning <b>Rivoj Bot</b>iga xush kelibsiz! 🚀\n\n" +
		"Men sizga biznesingizni rivojlantirish, mijozlarni jalb qilish va " +
		"daromadni oshirishda yordam beraman.\n\n" +
		divider + "\n\n" +
		"🎯 <b>Nima qilaman:</b>\n" +
		"✔️ Marketing strategiya\n" +
		"✔️ Mijozlar jalb qilish\n" +
		"✔️ Brend rivojlantirish\n" +
		"✔️ Reklama kampaniyalari\n" +
		"✔️ SMM xizmatlari\n\n" +
		divider + "\n\n" +
		"👇 <b>Quyidagi menyudan o'zingizga mos yo'nalishni tanlang:</b>"
}

const menuText = "🏠 <b>Asosiy menyu</b>\n\nQuyidagi yo'nalishlardan birini tanlang:"

const shortMenuText = "🏠 Asosiy menyu"

const helpText = "📘 <b>BOT BILAN QANDAY ISHLASH:</b>\n\n" +
	divider + "\n\n" +
	"1️⃣ <b>Kasbingizni tanlang</b>\n" +
	"   Pastdagi tugmalardan o'zingizga mos kasbni tanlang\n\n" +
	"2️⃣ <b>Muammoni belgilang</b>\n" +
	"   Sizni qaysi muammo qiynayotganini ayting\n\n" +
	"3️⃣ <b>Taklifni ko'ring</b>\n" +
	"   Sizga maxsus taklif tayyorlanadi\n\n" +
	"4️⃣ <b>Kontakt yuboring</b>\n" +
	"   Telefon raqamingizni ulashing\n\n" +
	"5️⃣ <b>Biz bog'lanamiz</b>\n" +
	"   2-3 soat ichida mutaxassislar qo'ng'iroq qiladi\n\n" +
	divider + "\n\n" +
	"🎯 <b>QO'SHIMCHA IMKONIYATLAR:</b>\n\n" +
	"💰 <b>Narxlar</b> - Paketlar va narxlar haqida\n" +
	"📊 <b>Portfolio</b> - Bizning ishlarimiz\n" +
	"🎁 <b>Aksiyalar</b> - Chegirmalar va bonuslar\n" +
	"⭐ <b>Mijozlar fikri</b> - Sharhlar va fikrlar\n\n" +
	divider + "\n\n" +
	"❓ <b>SAVOL-JAVOBLAR:</b>\n\n" +
	"<b>S:</b> Qancha vaqt kerak bo'ladi?\n" +
	"<b>J:</b> Mini paket 2 hafta, Standart 1 oy, Premium 3 oy\n\n" +
	"<b>S:</b> Natija kafolatlanganmi?\n" +
	"<b>J:</b> Ha, shartnomada belgilanadi\n\n" +
	"<b>S:</b> To'lov qanday?\n" +
	"<b>J:</b> Bosqichma-bosqich yoki to'liq (chegirma bilan)\n\n" +
	divider + "\n\n" +
	"📞 <b>BOG'LANISH:</b>\n" +
	"Kontakt yuborish tugmasini bosing va biz 2-3 soat ichida siz bilan bog'lanamiz!\n\n" +
	"⚡ <i>Har qanday savollaringiz bo'lsa, kontakt yuboring!</i>"

const portfolioText = "📊 <b>BIZNING PORTFOLIO</b>\n\n" +
	divider + "\n\n" +
	"🏆 <b>200+ muvaffaqiyatli loyiha</b>\n" +
	"📈 <b>5+ yillik tajriba</b>\n" +
	"⭐ <b>50+ doimiy mijozlar</b>\n\n" +
	divider + "\n\n" +
	"💼 <b>BIZNING ISHLARIMIZ:</b>\n\n" +
	"🥇 <b>Restoran \"Osh Markazi\"</b>\n" +
	"• Mijozlar 300% oshdi\n" +
	"• Instagram: 5K → 45K followers\n" +
	"• Oylik daromad 3x ko'paydi\n\n" +
	"🥈 <b>Sartaroshxona \"Style Pro\"</b>\n" +
	"• 15 ta yangi filial ochildi\n" +
	"• Kunlik mijozlar 20 → 80 ga\n" +
	"• Brend №1 bo'ldi\n\n" +
	"🥉 <b>IT maktabi \"CodeLab\"</b>\n" +
	"• O'quvchilar soni 5 baravar oshdi\n" +
	"• Onlayn kurslar ishga tushdi\n" +
	"• Daromad $10K/oy ga yetdi\n\n" +
	divider + "\n\n" +
	"📈 <b>O'RTACHA NATIJALAR:</b>\n\n" +
	"✅ Mijozlar +150-300%\n" +
	"✅ Sotuvlar +50-100%\n" +
	"✅ Daromad 2-5x oshishi\n" +
	"✅ Brend taniqligining oshishi\n" +
	"✅ Social media o'sishi\n\n" +
	divider + "\n\n" +
	"🎯 <b>SOHALARIMIZDAGI TAJRIBA:</b>\n\n" +
	"• Restoran va kafe 🍽\n" +
	"• Sartaroshxona va go'zallik 💇\n" +
	"• Ta'lim va kurslar 📚\n" +
	"• IT va texnologiya 💻\n" +
	"• Savdo va xizmatlar 🛍\n" +
	"• Tibbiyot va klinikalar 🏥\n" +
	"• Sport va fitnes 🏋️\n" +
	"• Ko'chmas mulk 🏢\n\n" +
	"💡 <i>Sizning soha ham bu ro'yxatda!</i>"

const portfolioFollowUp = "📲 Batafsil portfolio uchun kontakt yuboring!"

const promoText = "🎁 <b>MAXSUS AKSIYALAR VA CHEGIRMALAR</b>\n\n" +
	divider + "\n\n" +
	"🔥 <b>HOZIRGI AKSIYALAR:</b>\n\n" +
	"1️⃣ <b>Birinchi 10 mijoz uchun</b>\n" +
	"   💰 20% chegirma barcha paketlarga\n" +
	"   ⏰ Muddati: 31-oktabr 2025\n" +
	"   🎯 8 ta joy qoldi!\n\n" +
	"2️⃣ <b>To'liq to'lovda</b>\n" +
	"   💰 15% qo'shimcha chegirma\n" +
	"   🎁 + Logo dizayni bepul\n" +
	"   ⏰ Doimiy aksiya\n\n" +
	"3️⃣ <b>Do'stingizni taklif qiling</b>\n" +
	"   💰 Har ikkalangiz 10% chegirma\n" +
	"   🎁 + 2 ta bepul post\n" +
	"   ⏰ Doimiy dastur\n\n" +
	"4️⃣ <b>3 oylik paket olsangiz</b>\n" +
	"   💰 4-chi oy 50% chegirma\n" +
	"   🎁 + Video rolik bepul\n" +
	"   ⏰ Oktabr oyida\n\n" +
	divider + "\n\n" +
	"🎯 <b>MAXSUS BONUSLAR:</b>\n\n" +
	"✨ Birinchi konsultatsiya - BEPUL\n" +
	"✨ Social media audit - BEPUL\n" +
	"✨ Strategiya dokument - BEPUL\n" +
	"✨ Logo dizayni - 50% chegirma\n" +
	"✨ Landing page - 30% chegirma\n\n" +
	divider + "\n\n" +
	"💎 <b>VIP MIJOZLAR UCHUN:</b>\n\n" +
	"• Yillik paket - 2 oy bepul\n" +
	"• Shaxsiy menejer - bepul\n" +
	"• Priority qo'llab-quvvatlash\n" +
	"• Maxsus shartlar\n\n" +
	divider + "\n\n" +
	"⚡ <b>CHEGIRMALARNI BIRLASHTIRING:</b>\n\n" +
	"Misol:\n" +
	"• Mini paket: 500$\n" +
	"• Birinchi 10 mijoz: -20% = 400$\n" +
	"• To'liq to'lov: -15% = 340$\n" +
	"• Jami tejash: 160$ (32%)\n\n" +
	"💡 <i>Chegirmalar cheklangan vaqt uchun!</i>"

const promoFollowUp = "🔥 Chegirmadan foydalanish uchun hoziroq kontakt yuboring!"

func roleSelectedText(roleLabel string) string {
	return header(roleLabel, StepRoleSelected) +
		"🎯 <b>Ajoyib tanlov!</b>\n\n" +
		"Hozir sizni eng ko'p qaysi muammo qiynayotganini aniqlaylik. " +
		"Bu sizga mos yechim topishimga yordam beradi.\n\n" +
		"👇 <b>Muammoni tanlang:</b>"
}

func backToProblemsText(roleLabel string) string {
	return header(roleLabel, StepRoleSelected) +
		"Boshqa muammoni tanlang:\n\n" +
		"👇 <b>Muammoni tanlang:</b>"
}

func analysisText(roleLabel, problemLabel string) string {
	return "🔍 <b>Tahlil qilinmoqda...</b>\n\n" +
		"📋 <b>Kasbingiz:</b> " + format.Escape(roleLabel) + "\n" +
		"🎯 <b>Muammo:</b> " + format.Escape(problemLabel) + "\n\n" +
		"⏳ Sizga maxsus yechim tayyorlanmoqda..."
}

func offerReadyText(roleLabel, problemLabel string) string {
	return "✅ <b>Maxsus taklif tayyorlandi!</b>\n\n" +
		"📋 <b>Siz tanladingiz:</b> " + format.Escape(problemLabel) + "\n" +
		"💼 <b>Kasbingiz:</b> " + format.Escape(roleLabel) + "\n\n" +
		"🎯 <b>Sizning muammongizga yechim:</b>\n" +
		"Men sizning ehtiyojlaringizga mos keladigan maxsus taklif tayyorladim. " +
		"Bu taklif sizning biznesingizni rivojlantirish va muammolaringizni hal qilishga yordam beradi."
}

const offerCaption = "📄 <b>Sizning maxsus taklifingiz</b>\n\n" +
	"✅ Taklifni yuklab olib diqqat bilan o'qib chiqing.\n" +
	"✅ Barcha tafsilotlar faylda ko'rsatilgan.\n\n" +
	"💡 <i>Savollaringiz bo'lsa, pastdagi tugmalardan foydalaning!</i>"

func offerSummaryText(roleLabel, problemLabel string) string {
	return "📄 <b>SIZNING MAXSUS TAKLIFINGIZ</b>\n\n" +
		"🎯 <b>Muammo:</b> " + format.Escape(problemLabel) + "\n" +
		"💼 <b>Yo'nalish:</b> " + format.Escape(roleLabel) + "\n\n" +
		divider + "\n\n" +
		"📦 <b>PAKETLAR:</b>\n\n" +
		"💎 MINI: 500$-900$ | 2 hafta\n" +
		"⭐ STANDART: 1000$-2500$ | 1 oy\n" +
		"👑 PREMIUM: 3000$+ | 3 oy\n\n" +
		"Batafsil ma'lumot uchun tugmalarni bosing! 👇"
}

const nextStepText = "🎯 <b>Keyingi qadam:</b>\n\n👇 Quyidagi tugmalardan foydalaning:"

const offerViewCaption = "📄 <b>Sizning maxsus taklifingiz</b>\n\n" +
	"✅ Taklifni saqlang va o'qib chiqing\n" +
	"💡 Savollaringiz bo'lsa, tugmalardan foydalaning"

const offerListText = "📄 <b>TAKLIFLAR RO'YXATI</b>\n\n" +
	"💎 Mini - 500$+ | 2 hafta\n" +
	"⭐ Standart - 1000$+ | 1 oy\n" +
	"👑 Premium - 3000$+ | 3 oy\n\n" +
	"Batafsil: Narxlar tugmasini bosing"

func offerDetailsText(roleLabel, problemLabel string) string {
	return "ℹ️ <b>BATAFSIL MA'LUMOT</b>\n\n" +
		"📋 Yo'nalish: " + format.Escape(roleLabel) + "\n" +
		"🎯 Muammo: " + format.Escape(problemLabel) + "\n\n" +
		divider + "\n\n" +
		"🔥 <b>YONDASHUV:</b>\n\n" +
		"1️⃣ Chuqur tahlil\n" +
		"2️⃣ Strategiya yaratish\n" +
		"3️⃣ Amalga oshirish\n" +
		"4️⃣ Natijalarni kuzatish\n\n" +
		"✅ Kafolatlangan natija\n" +
		"✅ Professional jamoa\n" +
		"✅ 24/7 qo'llab-quvvatlash"
}

const contactNowText = "📲 <b>Kontaktingizni yuboring</b>\n\n" +
	"Quyidagi tugmani bosib telefon raqamingizni ulashing.\n" +
	"Biz 2-3 soat ichida bog'lanamiz!\n\n" +
	"🔒 Ma'lumotlar maxfiy saqlanadi."

const contactPromptText = "📞 <b>Kontaktingizni yuboring</b>\n\n" +
	"Quyidagi tugmani bosib, telefon raqamingizni ulashing. " +
	"Biz 2-3 soat ichida siz bilan bog'lanamiz!\n\n" +
	"🔒 <i>Ma'lumotlaringiz xavfsiz va maxfiy saqlanadi.</i>"

const contactAgainText = "📲 <b>Kontaktingizni qayta yuboring</b>\n\nTugmani bosing:"

const contactCancelText = "❌ Kontakt yuborish bekor qilindi.\n\nAsosiy menyudan davom eting."

func thankYouText(firstName, phone string) string {
	return fmt.Sprintf("✅ <b>Ajoyib, %s!</b>\n\n", format.Escape(firstName)) +
		"📞 Telefon raqamingiz qabul qilindi:\n" + format.Code(phone) + "\n\n" +
		"⏰ <b>Keyingi 2-3 soat ichida</b> bizning mutaxassislarimiz siz bilan bog'lanadi!\n\n" +
		"🎯 Biz siz bilan:\n" +
		"• Muammolaringizni muhokama qilamiz\n" +
		"• Eng mos yechimni taklif qilamiz\n" +
		"• Maxsus narx va shartlarni kelishamiz\n" +
		"• Barcha savollaringizga javob beramiz"
}

const extrasText = divider + "\n\n" +
	"🔥 <b>SIZ UCHUN MAXSUS IMKONIYATLAR:</b>\n\n" +
	"✔️ <b>Tezkor natija</b>\n" +
	"   Birinchi natijalarni 1-2 haftada ko'rasiz\n\n" +
	"✔️ <b>Mutaxassis yondashuvi</b>\n" +
	"   Tajribali marketing jamoasi bilan ishlash\n\n" +
	"✔️ <b>Shaxsiy yordam</b>\n" +
	"   Sizga maxsus menejer biriktiriladi\n\n" +
	"✔️ <b>Kafolatlangan sifat</b>\n" +
	"   Shartnomaga asoslangan ishlash\n\n" +
	"✔️ <b>To'liq qo'llab-quvvatlash</b>\n" +
	"   24/7 aloqada bo'lamiz\n\n" +
	divider + "\n\n" +
	"🎁 <b>MAXSUS BONUSLAR:</b>\n" +
	"• Birinchi konsultatsiya bepul\n" +
	"• Social media audit bepul\n" +
	"• Logo dizayni 50% chegirma\n" +
	"• Birinchi 10 mijozga 20% chegirma\n\n" +
	"💡 <i>Quyidagi tugmalardan qo'shimcha ma'lumot olishingiz mumkin!</i>"

const afterContactMenuText = divider + "\n\n" +
	"🏠 <b>Asosiy menyu</b>\n\n" +
	"Qo'shimcha xizmatlar va ma'lumot uchun quyidagi menyudan foydalaning:"

func duplicateContactText(phone string) string {
	return "✅ <b>Raqamingiz allaqachon qabul qilingan</b>\n\n" +
		"📞 " + format.Code(phone) + "\n\n" +
		"⏰ Mutaxassislarimiz tez orada siz bilan bog'lanadi!"
}

const storeFailedText = "⚠️ <b>Kontaktingizni saqlab bo'lmadi</b>\n\n" +
	"Iltimos, bir necha daqiqadan so'ng kontaktni qayta yuboring."

const packagesText = "📦 <b>BIZNING PAKETLARIMIZ</b>\n\n" +
	divider + "\n\n" +
	"💎 <b>1. MINI PAKET</b>\n\n" +
	"⏱ Muddat: 2 hafta\n" +
	"💵 Narx: 500$ - 900$\n\n" +
	"<b>Xizmatlar:</b>\n" +
	"✔️ Biznes tahlili\n" +
	"✔️ Raqobatchilar tahlili\n" +
	"✔️ Tezkor marketing strategiya\n" +
	"✔️ 2 ta professional kontent\n" +
	"✔️ Asosiy qo'llab-quvvatlash\n\n" +
	"<b>Natija:</b>\n" +
	"📈 Sotuvning 15-25% oshishi\n" +
	"🎯 Yangi mijozlar oqimi\n\n" +
	divider + "\n\n" +
	"⭐ <b>2. STANDART PAKET</b> 🔥 <i>Mashhur</i>\n\n" +
	"⏱ Muddat: 1 oy\n" +
	"💵 Narx: 1000$ - 2500$\n\n" +
	"<b>Xizmatlar:</b>\n" +
	"✔️ To'liq marketing strategiya\n" +
	"✔️ Auditoriya tahlili\n" +
	"✔️ 4 ta premium kontent\n" +
	"✔️ Reklama kampaniyasi\n" +
	"✔️ Haftalik konsultatsiya\n" +
	"✔️ Analitika hisobotlari\n\n" +
	"<b>Natija:</b>\n" +
	"📈 Sotuvning 30-50% oshishi\n" +
	"🎯 Barqaror mijozlar bazasi\n" +
	"💰 Daromadning 2x o'sishi\n\n" +
	divider + "\n\n" +
	"👑 <b>3. PREMIUM PAKET</b> ⭐ <i>VIP</i>\n\n" +
	"⏱ Muddat: 3 oy\n" +
	"💵 Narx: 3000$+\n\n" +
	"<b>Xizmatlar:</b>\n" +
	"✔️ Kompleks brend strategiya\n" +
	"✔️ To'liq raqamli marketing\n" +
	"✔️ 12 ta eksklyuziv kontent\n" +
	"✔️ Reklama boshqarish\n" +
	"✔️ SMM va targetolog\n" +
	"✔️ Doimiy konsultatsiya 24/7\n" +
	"✔️ Shaxsiy menejer\n\n" +
	"<b>Natija:</b>\n" +
	"📈 Sotuvning 60-100% oshishi\n" +
	"🎯 Premium mijozlar\n" +
	"💰 Daromadning 3-5x o'sishi\n" +
	"🏆 Bozorda lider pozitsiya\n\n" +
	divider + "\n\n" +
	"🎁 <b>BONUSLAR:</b>\n" +
	"✨ Birinchi 10 ta mijozga 20% chegirma\n" +
	"✨ Bepul konsultatsiya\n" +
	"✨ Logo dizayn 50% off\n\n" +
	"💡 <i>Har bir paket sizga moslashtiriladi!</i>"

const packagesFollowUp = "👇 Keyingi qadam:"

const pricesMenuText = "💰 <b>Narxlar bo'yicha ma'lumot:</b>\n\nDiapazondan tanlang:"

const pricesPickText = "💰 Narx diapazonini tanlang:"

const portfolioSummaryText = "📊 <b>PORTFOLIO</b>\n\n" +
	"🏆 200+ loyiha\n" +
	"⭐ 5+ yil tajriba\n" +
	"💼 50+ doimiy mijoz\n\n" +
	divider + "\n\n" +
	"<b>Muvaffaqiyatli loyihalar:</b>\n\n" +
	"• Restoran: Mijozlar 300% ↑\n" +
	"• Sartaroshxona: 15 filial ochildi\n" +
	"• IT maktab: Daromad $10K/oy\n" +
	"• Online do'kon: Sotuvlar 5x\n\n" +
	"Batafsil: /portfolio"

const reviewsText = "⭐⭐⭐⭐⭐ <b>MIJOZLAR FIKRI</b>\n\n" +
	divider + "\n\n" +
	"👤 <b>Jamshid - Restoran egasi</b>\n" +
	"\"3 oy ichida mijozlarim 4 barobar ko'paydi! Professional jamoa va ajoyib natija.\"\n" +
	"⭐⭐⭐⭐⭐\n\n" +
	"👤 <b>Dilnoza - Sartaroshxona</b>\n" +
	"\"Haqiqiy mutaxassislar! Instagram sahifam 5K dan 45K ga o'sdi. Rahmat!\"\n" +
	"⭐⭐⭐⭐⭐\n\n" +
	"👤 <b>Sardor - IT maktab</b>\n" +
	"\"Eng yaxshi investitsiya edi. O'quvchilar soni 5 barobar oshdi, daromad ham!\"\n" +
	"⭐⭐⭐⭐⭐\n\n" +
	"👤 <b>Madina - Online do'kon</b>\n" +
	"\"Sotuvlarim 500% o'sdi! Shaxsiy menejer doimo yordam berdi. Tavsiya qilaman!\"\n" +
	"⭐⭐⭐⭐⭐\n\n" +
	divider + "\n\n" +
	"📊 <b>O'rtacha baho: 4.9/5</b>\n" +
	"👥 <b>200+ mamnun mijoz</b>\n\n" +
	"💡 <i>Siz ham muvaffaqiyatli bo'ling!</i>"

// Price tier callback keys.
const (
	PriceMini     = "price_500"
	PriceStandard = "price_1000"
	PricePremium  = "price_3000"
)

var priceTierTexts = map[string]string{
	PriceMini: "💎 <b>MINI PAKET: 500$ - 900$</b>\n\n" +
		"⏱ Muddat: 2 hafta\n\n" +
		"<b>To'liq xizmatlar:</b>\n" +
		"✔️ Biznes va bozor tahlili\n" +
		"✔️ Raqobatchilar tahlili\n" +
		"✔️ Marketing strategiya\n" +
		"✔️ 2 ta professional kontent\n" +
		"✔️ Social media sozlash\n" +
		"✔️ Bepul konsultatsiya\n\n" +
		"<b>Natija:</b>\n" +
		"📈 Sotuvning 15-25% ↑\n" +
		"🎯 50-100 yangi mijoz\n" +
		"💰 Daromadning 20-30% ↑\n\n" +
		"🎁 <b>Chegirma:</b> 25% birinchi 5 mijozga\n" +
		"💵 Final narx: <b>375$ - 675$</b>",
	PriceStandard: "⭐ <b>STANDART PAKET: 1000$ - 2500$</b>\n\n" +
		"⏱ Muddat: 1 oy\n\n" +
		"<b>To'liq xizmatlar:</b>\n" +
		"✔️ Chuqur bozor tahlili\n" +
		"✔️ To'liq marketing strategiya\n" +
		"✔️ Auditoriya segmentatsiyasi\n" +
		"✔️ 4 ta premium kontent\n" +
		"✔️ 2 ta reklama kampaniyasi\n" +
		"✔️ Haftalik konsultatsiya (8 soat)\n" +
		"✔️ SMM strategiya\n" +
		"✔️ Email marketing\n" +
		"✔️ Haftalik hisobotlar\n\n" +
		"<b>Natija:</b>\n" +
		"📈 Sotuvning 30-50% ↑\n" +
		"🎯 200-500 yangi mijoz\n" +
		"💰 Daromadning 2x ↑\n" +
		"🌟 Brend taniqligining ↑\n\n" +
		"🎁 <b>Bonuslar:</b>\n" +
		"• Logo dizayn 50% off\n" +
		"• Landing page 30% off\n" +
		"• SEO audit bepul\n\n" +
		"💵 Chegirma: <b>800$ - 2000$</b>",
	PricePremium: "👑 <b>PREMIUM PAKET: 3000$+</b>\n\n" +
		"⏱ Muddat: 3 oy\n\n" +
		"<b>VIP xizmatlar:</b>\n" +
		"✔️ Kompleks brend strategiya\n" +
		"✔️ 360° raqamli marketing\n" +
		"✔️ 12 ta eksklyuziv kontent\n" +
		"✔️ 6 ta reklama kampaniyasi\n" +
		"✔️ To'liq SMM boshqarish\n" +
		"✔️ Targetolog xizmatlari\n" +
		"✔️ 24/7 konsultatsiya\n" +
		"✔️ Email marketing\n" +
		"✔️ Influencer marketing\n" +
		"✔️ SEO optimizatsiya\n" +
		"✔️ Shaxsiy menejer\n" +
		"✔️ Crisis management\n\n" +
		"<b>Natija:</b>\n" +
		"📈 Sotuvning 60-100%+ ↑\n" +
		"🎯 500-1000+ premium mijoz\n" +
		"💰 Daromadning 3-5x ↑\n" +
		"🏆 Bozorda №1 pozitsiya\n\n" +
		"🎁 <b>VIP bonuslar:</b>\n" +
		"• Logo va brend identifikatsiya\n" +
		"• Website yaratish\n" +
		"• Fotosessiya\n" +
		"• Video roliklar (2 ta)\n" +
		"• Chatbot yaratish\n" +
		"• CRM integratsiya\n\n" +
		"💵 Chegirma: <b>2250$+</b>",
}

const priceFollowUp = "📞 <b>Xizmatdan foydalanish uchun:</b>\n\n" +
	"Kontakt yuboring va biz sizga:\n" +
	"✅ 2 soat ichida javob beramiz\n" +
	"✅ Bepul konsultatsiya\n" +
	"✅ Maxsus narx taklif qilamiz\n\n" +
	"⚡ Chegirmalar cheklangan!"

const fullPricesText = "💰 <b>TO'LIQ NARXLAR RO'YXATI</b>\n\n" +
	divider + "\n\n" +
	"💎 <b>MINI PAKET</b>\n" +
	"Narx: 500$ - 900$\n" +
	"Chegirma: 375$ - 675$\n" +
	"Muddat: 2 hafta\n\n" +
	"⭐ <b>STANDART PAKET</b>\n" +
	"Narx: 1000$ - 2500$\n" +
	"Chegirma: 800$ - 2000$\n" +
	"Muddat: 1 oy\n\n" +
	"👑 <b>PREMIUM PAKET</b>\n" +
	"Narx: 3000$+\n" +
	"Chegirma: 2250$+\n" +
	"Muddat: 3 oy\n\n" +
	divider + "\n\n" +
	"🎁 <b>QO'SHIMCHA XIZMATLAR:</b>\n\n" +
	"• Logo dizayn: 200$ - 500$\n" +
	"• Landing page: 300$ - 800$\n" +
	"• Video rolik: 150$ - 400$\n" +
	"• Fotosessiya: 100$ - 300$\n" +
	"• Chatbot: 200$ - 600$\n" +
	"• SEO: 400$ - 1000$/oy\n\n" +
	divider + "\n\n" +
	"💡 <b>TO'LOV SHARTLARI:</b>\n\n" +
	"1️⃣ Bosqichma-bosqich to'lov\n" +
	"   • 50% oldindan\n" +
	"   • 50% natija ko'rsatilganda\n\n" +
	"2️⃣ To'liq to'lov\n" +
	"   • 15% qo'shimcha chegirma\n\n" +
	"3️⃣ Oylik to'lov\n" +
	"   • Premium paket uchun\n\n" +
	divider + "\n\n" +
	"📞 Aniq narx uchun kontakt yuboring!"

const (
	keywordPricesText  = "💰 Narxlar bo'limiga o'ting:"
	keywordOfferText   = "📋 Taklif olish uchun:\n1. Kasbingizni tanlang\n2. Muammoingizni belgilang\n\nAsosiy menyudan boshlang 👇"
	keywordHelpText    = "ℹ️ Yordam"
	keywordPortfolio   = "📊 Portfolio"
	keywordPromoText   = "🎁 Aksiyalar"
	keywordContactText = "📲 Kontaktingizni yuboring:"
	notUnderstoodText  = "🤔 <b>Tushunmadim...</b>\n\n" +
		"Quyidagi menyudan tanlang yoki:\n" +
		"• /help - Yordam\n" +
		"• /start - Boshlash\n" +
		"• /menu - Asosiy menyu"
)

// ErrorText answers a user whose update failed unexpectedly.
const ErrorText = "⚠️ <b>Xatolik yuz berdi</b>\n\n" +
	"Iltimos, qaytadan urinib ko'ring yoki /start buyrug'ini yozing.\n\n" +
	"Muammo davom etsa, kontaktingizni yuboring - biz yordam beramiz!"
