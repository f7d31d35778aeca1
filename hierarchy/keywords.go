package hierarchy

// KeywordTable maps each chapter to the lowercase keywords and phrases that
// suggest it. Process-wide, read-only, initialized once.
type KeywordTable map[string][]string

// DefaultKeywordTable returns the built-in keyword table used for chapter
// detection. The returned table must not be mutated.
func DefaultKeywordTable() KeywordTable {
	return defaultKeywords
}

var defaultKeywords = KeywordTable{
	ChapterInfectious: {
		"infection", "infectious", "bacteria", "virus", "parasite", "sepsis",
		"tuberculosis", "hiv", "hepatitis", "covid",
	},
	ChapterNeoplasms: {
		"cancer", "tumor", "neoplasm", "carcinoma", "malignant", "benign",
		"metastasis", "lymphoma", "leukemia", "sarcoma",
	},
	ChapterBlood: {
		"anemia", "blood", "coagulation", "hemophilia", "thrombocytopenia",
		"bleeding", "clotting",
	},
	ChapterEndocrine: {
		"diabetes", "thyroid", "endocrine", "metabolic", "obesity",
		"malnutrition", "vitamin deficiency", "gout", "hyperthyroid",
	},
	ChapterMental: {
		"depression", "anxiety", "psychosis", "mental", "psychiatric",
		"bipolar", "schizophrenia", "adhd", "autism", "dementia",
	},
	ChapterNervous: {
		"neurological", "epilepsy", "seizure", "parkinson", "alzheimer",
		"migraine", "neuropathy", "multiple sclerosis", "nerve",
	},
	ChapterEye: {
		"eye", "vision", "blindness", "cataract", "glaucoma", "retina",
		"visual", "optic", "ocular",
	},
	ChapterEar: {
		"ear", "hearing", "deafness", "tinnitus", "otitis", "mastoid",
		"auditory",
	},
	ChapterCirculatory: {
		"heart", "cardiac", "hypertension", "stroke", "cardiovascular",
		"arrhythmia", "myocardial infarction", "coronary", "vascular",
	},
	ChapterRespiratory: {
		"lung", "respiratory", "asthma", "pneumonia", "copd", "bronchitis",
		"pulmonary", "breathing", "cough",
	},
	ChapterDigestive: {
		"stomach", "intestinal", "digestive", "gastric", "liver", "cirrhosis",
		"ulcer", "gallbladder", "pancreas", "bowel",
	},
	ChapterSkin: {
		"skin", "dermatitis", "rash", "eczema", "psoriasis", "ulcer",
		"abscess", "cellulitis", "wound",
	},
	ChapterMusculoskeletal: {
		"bone", "joint", "arthritis", "fracture", "osteoporosis", "back pain",
		"musculoskeletal", "rheumatoid", "muscle",
	},
	ChapterGenitourinary: {
		"kidney", "renal", "urinary", "bladder", "prostate", "ureter",
		"nephritis", "genital",
	},
	ChapterPregnancy: {
		"pregnancy", "pregnant", "childbirth", "labor", "delivery",
		"obstetric", "maternal", "fetal", "prenatal",
	},
	ChapterPerinatal: {
		"newborn", "neonatal", "perinatal", "birth", "premature",
	},
	ChapterCongenital: {
		"congenital", "birth defect", "chromosomal", "malformation",
		"genetic", "syndrome",
	},
	ChapterSymptoms: {
		"symptom", "abnormal", "finding", "pain", "fever", "fatigue",
		"dizziness", "weakness",
	},
	ChapterInjury: {
		"injury", "fracture", "trauma", "poisoning", "burn", "wound",
		"laceration", "accident", "fall",
	},
	ChapterExternal: {
		"accident", "fall", "collision", "assault", "suicide", "external cause",
	},
	ChapterHealthFactors: {
		"screening", "examination", "history of", "follow-up", "counseling",
		"vaccination", "prophylactic",
	},
}
