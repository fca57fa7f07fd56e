package generator

// Medical vocabulary for the synthetic corpus. Diagnoses and treatments are
// whitespace-tokenized into keywords, so multi-word entries fan out into
// several index terms.

var departments = []string{
	"Cardiologia", "Neurologia", "Oncologia", "Ortopedia", "Pediatria",
	"Ginecologia", "Urologia", "Dermatologia", "Pneumologia", "Gastroenterologia",
	"Nefrologia", "Endocrinologia", "Reumatologia", "Ematologia", "Geriatria",
	"Psichiatria", "Chirurgia Generale", "Medicina Interna", "Pronto Soccorso", "Terapia Intensiva",
}

var diagnoses = []string{
	"ipertensione arteriosa", "insufficienza cardiaca", "aritmia", "infarto miocardico",
	"angina pectoris", "fibrillazione atriale", "tachicardia", "bradicardia",
	"emicrania", "epilessia", "ictus", "sclerosi multipla", "parkinson",
	"alzheimer", "neuropatia periferica", "cefalea tensiva",
	"carcinoma polmonare", "carcinoma mammario", "carcinoma colon-retto",
	"leucemia", "linfoma", "melanoma", "carcinoma prostatico",
	"frattura", "artrosi", "artrite reumatoide", "osteoporosi", "ernia discale",
	"tendinite", "borsite", "scoliosi",
	"diabete mellito tipo 2", "diabete mellito tipo 1", "ipotiroidismo", "ipertiroidismo",
	"anemia", "insufficienza renale", "cirrosi epatica", "gastrite",
	"ulcera peptica", "colite", "bronchite cronica", "asma bronchiale",
	"polmonite", "influenza", "covid-19", "allergia alimentare",
}

var treatments = []string{
	"ramipril 5mg", "metformina 1000mg", "atorvastatina 20mg", "omeprazolo 20mg",
	"aspirina 100mg", "warfarin 5mg", "insulina glargine", "levotiroxina 50mcg",
	"amlodipina 5mg", "bisoprololo 2.5mg", "furosemide 25mg", "prednisone 25mg",
	"intervento chirurgico", "radioterapia", "chemioterapia", "fisioterapia",
	"riabilitazione cardiologica", "dialisi", "trasfusione", "biopsia",
	"endoscopia", "colonscopia", "TAC", "risonanza magnetica", "ecografia",
	"elettrocardiogramma", "holter cardiaco", "spirometria",
}

var symptoms = []string{
	"dolore toracico", "dispnea", "astenia", "cefalea", "vertigini",
	"nausea", "vomito", "febbre", "tosse", "dolore addominale",
	"edema", "palpitazioni", "sincope", "parestesie", "artralgia",
}

var firstNames = []string{
	"Mario", "Giuseppe", "Giovanni", "Francesco", "Antonio", "Luigi", "Marco",
	"Paolo", "Andrea", "Roberto", "Maria", "Rosa", "Anna", "Francesca", "Giulia",
	"Laura", "Sara", "Elena", "Alessia", "Silvia",
}

var lastNames = []string{
	"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo",
	"Ricci", "Marino", "Greco", "Bruno", "Gallo", "Conti", "Costa", "Mancini",
}
