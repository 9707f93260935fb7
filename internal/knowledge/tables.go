package knowledge

import "github.com/symptom-triage-server/internal/domain"

func defaultTables() Tables {
	return Tables{
		BodyAreaSymptoms:  bodyAreaSymptoms,
		SymptomConditions: symptomConditions,
		MedicalConditions: medicalConditions,
		DurationImpact:    durationImpact,
	}
}

// Acute presentations weigh more than long-standing ones.
var durationImpact = map[domain.DurationBucket]float64{
	domain.DurationHours:  1.2,
	domain.DurationDays:   1.0,
	domain.DurationWeeks:  0.9,
	domain.DurationMonths: 0.8,
	domain.DurationYears:  0.7,
}

// UI suggestion lists only; not used for scoring.
var bodyAreaSymptoms = map[string][]string{
	"head": {
		"headache", "dizziness", "confusion", "stiff neck", "sensitivity to light",
	},
	"eyes, ears, nose and throat": {
		"sore throat", "runny nose", "sneezing", "itchy eyes", "blurred vision", "vision changes",
	},
	"chest": {
		"chest pain", "shortness of breath", "cough", "wheezing", "palpitations", "heartburn",
	},
	"abdomen": {
		"abdominal pain", "nausea", "vomiting", "diarrhea", "constipation", "loss of appetite",
	},
	"back": {
		"back pain", "stiff neck",
	},
	"arms and legs": {
		"joint pain", "muscle aches", "swelling", "numbness",
	},
	"skin": {
		"rash", "swelling",
	},
	"urinary": {
		"frequent urination", "painful urination", "excessive thirst",
	},
	"general": {
		"fever", "chills", "fatigue", "dizziness", "loss of appetite",
	},
	"mental health": {
		"low mood", "excessive worry", "confusion",
	},
}

var symptomConditions = map[string][]ConditionAssociation{
	"headache": {
		{"Tension Headache", 0.7, 1, true},
		{"Migraine", 0.6, 2, true},
		{"Sinusitis", 0.3, 1, false},
		{"Influenza", 0.3, 2, false},
		{"Meningitis", 0.2, 5, false},
		{"Hypertension", 0.2, 3, false},
		{"COVID-19", 0.2, 3, false},
	},
	"fever": {
		{"Influenza", 0.6, 2, true},
		{"COVID-19", 0.5, 3, true},
		{"Pneumonia", 0.4, 3, false},
		{"Strep Throat", 0.4, 2, false},
		{"Common Cold", 0.3, 1, false},
		{"Meningitis", 0.3, 5, false},
		{"Gastroenteritis", 0.3, 2, false},
		{"Urinary Tract Infection", 0.2, 2, false},
	},
	"cough": {
		{"Bronchitis", 0.6, 2, true},
		{"Common Cold", 0.5, 1, true},
		{"Pneumonia", 0.5, 3, false},
		{"Influenza", 0.4, 2, false},
		{"COVID-19", 0.4, 3, false},
		{"Asthma", 0.3, 3, false},
	},
	"sore throat": {
		{"Strep Throat", 0.6, 2, true},
		{"Common Cold", 0.5, 1, false},
		{"Influenza", 0.3, 2, false},
		{"COVID-19", 0.2, 3, false},
	},
	"runny nose": {
		{"Common Cold", 0.7, 1, true},
		{"Allergic Rhinitis", 0.6, 1, true},
		{"Sinusitis", 0.4, 1, false},
		{"Influenza", 0.2, 2, false},
	},
	"sneezing": {
		{"Allergic Rhinitis", 0.7, 1, true},
		{"Common Cold", 0.5, 1, false},
	},
	"itchy eyes": {
		{"Allergic Rhinitis", 0.6, 1, true},
	},
	"fatigue": {
		{"Anemia", 0.5, 2, true},
		{"Hypothyroidism", 0.4, 2, false},
		{"Influenza", 0.3, 2, false},
		{"COVID-19", 0.3, 3, false},
		{"Depression", 0.3, 3, false},
	},
	"nausea": {
		{"Gastroenteritis", 0.5, 2, false},
		{"Food Poisoning", 0.5, 2, false},
		{"Migraine", 0.3, 2, false},
		{"Appendicitis", 0.3, 4, false},
	},
	"vomiting": {
		{"Gastroenteritis", 0.6, 2, true},
		{"Food Poisoning", 0.6, 2, true},
		{"Appendicitis", 0.3, 4, false},
		{"Meningitis", 0.2, 5, false},
	},
	"diarrhea": {
		{"Gastroenteritis", 0.7, 2, true},
		{"Food Poisoning", 0.6, 2, false},
		{"Irritable Bowel Syndrome", 0.4, 2, false},
	},
	"abdominal pain": {
		{"Irritable Bowel Syndrome", 0.5, 2, true},
		{"Appendicitis", 0.4, 4, true},
		{"Gastroenteritis", 0.4, 2, false},
		{"GERD", 0.3, 2, false},
		{"Food Poisoning", 0.3, 2, false},
		{"Urinary Tract Infection", 0.2, 2, false},
	},
	"chest pain": {
		{"Heart Attack", 0.6, 5, true},
		{"Angina", 0.5, 4, true},
		{"Pulmonary Embolism", 0.3, 5, false},
		{"GERD", 0.3, 2, false},
		{"Anxiety Disorder", 0.2, 2, false},
		{"Pneumonia", 0.2, 3, false},
	},
	"shortness of breath": {
		{"Asthma", 0.5, 3, true},
		{"Pulmonary Embolism", 0.4, 5, true},
		{"Heart Attack", 0.4, 5, false},
		{"Pneumonia", 0.3, 3, false},
		{"Anxiety Disorder", 0.3, 2, false},
		{"COVID-19", 0.3, 3, false},
	},
	"wheezing": {
		{"Asthma", 0.7, 3, true},
		{"Bronchitis", 0.4, 2, false},
	},
	"palpitations": {
		{"Arrhythmia", 0.6, 4, true},
		{"Anxiety Disorder", 0.5, 2, true},
	},
	"heartburn": {
		{"GERD", 0.8, 2, true},
	},
	"dizziness": {
		{"Vertigo", 0.5, 2, true},
		{"Dehydration", 0.4, 2, true},
		{"Anemia", 0.3, 2, false},
		{"Hypertension", 0.2, 3, false},
		{"Stroke", 0.2, 5, false},
	},
	"confusion": {
		{"Stroke", 0.5, 5, true},
		{"Meningitis", 0.3, 5, false},
		{"Dehydration", 0.3, 2, false},
	},
	"numbness": {
		{"Stroke", 0.5, 5, true},
	},
	"stiff neck": {
		{"Meningitis", 0.6, 5, true},
		{"Muscle Strain", 0.4, 1, false},
		{"Tension Headache", 0.3, 1, false},
	},
	"sensitivity to light": {
		{"Migraine", 0.6, 2, true},
		{"Meningitis", 0.4, 5, false},
	},
	"blurred vision": {
		{"Stroke", 0.4, 5, true},
		{"Migraine", 0.4, 2, false},
		{"Hypertension", 0.3, 3, false},
		{"Diabetes", 0.3, 3, false},
	},
	"vision changes": {
		{"Stroke", 0.4, 5, true},
		{"Migraine", 0.4, 2, false},
		{"Hypertension", 0.3, 3, false},
	},
	"rash": {
		{"Allergic Reaction", 0.6, 2, true},
		{"Eczema", 0.5, 1, true},
		{"Meningitis", 0.1, 5, false},
	},
	"swelling": {
		{"Deep Vein Thrombosis", 0.5, 4, true},
		{"Allergic Reaction", 0.4, 2, false},
		{"Gout", 0.3, 2, false},
	},
	"joint pain": {
		{"Arthritis", 0.6, 2, true},
		{"Gout", 0.5, 2, true},
		{"Influenza", 0.2, 2, false},
	},
	"back pain": {
		{"Muscle Strain", 0.6, 1, true},
		{"Kidney Stones", 0.4, 3, false},
	},
	"muscle aches": {
		{"Influenza", 0.5, 2, false},
		{"Muscle Strain", 0.4, 1, false},
		{"COVID-19", 0.3, 3, false},
	},
	"chills": {
		{"Influenza", 0.4, 2, false},
		{"Pneumonia", 0.3, 3, false},
		{"Urinary Tract Infection", 0.2, 2, false},
	},
	"loss of appetite": {
		{"Gastroenteritis", 0.3, 2, false},
		{"Depression", 0.3, 3, false},
		{"Appendicitis", 0.3, 4, false},
	},
	"constipation": {
		{"Irritable Bowel Syndrome", 0.4, 2, false},
		{"Hypothyroidism", 0.3, 2, false},
	},
	"frequent urination": {
		{"Urinary Tract Infection", 0.5, 2, true},
		{"Diabetes", 0.5, 3, true},
	},
	"painful urination": {
		{"Urinary Tract Infection", 0.7, 2, true},
		{"Kidney Stones", 0.3, 3, false},
	},
	"excessive thirst": {
		{"Diabetes", 0.6, 3, true},
		{"Dehydration", 0.5, 2, true},
	},
	"low mood": {
		{"Depression", 0.6, 3, true},
	},
	"excessive worry": {
		{"Anxiety Disorder", 0.7, 2, true},
	},
}
