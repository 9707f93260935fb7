package knowledge

var medicalConditions = map[string]MedicalCondition{
	"Tension Headache": {
		Description:      "A common headache felt as a tight band or pressure around the head, often linked to stress, posture or lack of sleep.",
		Severity:         1,
		Symptoms:         []string{"headache", "stiff neck"},
		RedFlags:         []string{"sudden severe headache", "headache after head injury"},
		CommonTreatments: []string{"Over-the-counter pain relief", "Rest and hydration", "Stress management"},
		WhenToSeekHelp:   "See a doctor if headaches are frequent or do not respond to usual pain relief.",
	},
	"Migraine": {
		Description:      "Recurring moderate to severe headaches, often one-sided and throbbing, sometimes with nausea, light sensitivity or visual aura.",
		Severity:         2,
		Symptoms:         []string{"headache", "nausea", "sensitivity to light", "blurred vision"},
		RedFlags:         []string{"first migraine after age 50", "weakness on one side", "worst headache of life"},
		CommonTreatments: []string{"Pain relief taken early in an attack", "Rest in a dark quiet room", "Prescription triptans"},
		WhenToSeekHelp:   "Seek care if attacks change pattern, become more frequent, or come with weakness or confusion.",
	},
	"Sinusitis": {
		Description:      "Inflammation of the sinuses, usually after a cold, causing facial pressure, congestion and headache.",
		Severity:         1,
		Symptoms:         []string{"headache", "runny nose"},
		RedFlags:         []string{"swelling around the eyes", "high fever"},
		CommonTreatments: []string{"Saline nasal rinses", "Decongestants", "Pain relief"},
		WhenToSeekHelp:   "See a doctor if symptoms last more than 10 days or worsen after improving.",
	},
	"Influenza": {
		Description:      "A contagious viral respiratory infection with sudden fever, body aches and fatigue.",
		Severity:         2,
		Symptoms:         []string{"fever", "headache", "cough", "sore throat", "muscle aches", "fatigue", "chills"},
		RedFlags:         []string{"difficulty breathing", "persistent chest pain", "confusion"},
		CommonTreatments: []string{"Rest and fluids", "Fever reducers", "Antiviral medication if started early"},
		WhenToSeekHelp:   "Seek care if you are in a high-risk group or develop breathing difficulty.",
	},
	"Meningitis": {
		Description:      "Inflammation of the membranes around the brain and spinal cord, which can be life-threatening when bacterial.",
		Severity:         5,
		Symptoms:         []string{"fever", "headache", "stiff neck", "sensitivity to light", "confusion", "vomiting", "rash"},
		RedFlags:         []string{"stiff neck with fever", "rash that does not fade under pressure", "drowsiness"},
		CommonTreatments: []string{"Emergency hospital assessment", "Intravenous antibiotics"},
		WhenToSeekHelp:   "Call emergency services immediately if meningitis is suspected.",
	},
	"Hypertension": {
		Description:      "Persistently raised blood pressure, usually without symptoms but increasing cardiovascular risk.",
		Severity:         3,
		Symptoms:         []string{"headache", "dizziness", "blurred vision"},
		RedFlags:         []string{"severe headache with vision changes", "chest pain"},
		CommonTreatments: []string{"Blood pressure monitoring", "Reduced salt intake", "Prescription antihypertensives"},
		WhenToSeekHelp:   "Book a check if home readings stay high; seek urgent care with chest pain or vision loss.",
	},
	"COVID-19": {
		Description:      "A viral respiratory illness ranging from mild cold-like symptoms to severe pneumonia.",
		Severity:         3,
		Symptoms:         []string{"fever", "cough", "fatigue", "shortness of breath", "muscle aches", "sore throat"},
		RedFlags:         []string{"trouble breathing", "persistent chest pressure", "bluish lips"},
		CommonTreatments: []string{"Isolation and rest", "Fluids and fever reducers", "Antivirals for high-risk patients"},
		WhenToSeekHelp:   "Seek care if breathing becomes difficult or symptoms worsen after the first week.",
	},
	"Common Cold": {
		Description:      "A mild viral infection of the nose and throat.",
		Severity:         1,
		Symptoms:         []string{"runny nose", "sneezing", "sore throat", "cough"},
		RedFlags:         []string{"high fever lasting more than three days"},
		CommonTreatments: []string{"Rest and fluids", "Throat lozenges", "Decongestants"},
		WhenToSeekHelp:   "See a doctor if symptoms last more than 10 days.",
	},
	"Pneumonia": {
		Description:      "Infection inflaming the air sacs of one or both lungs, which may fill with fluid.",
		Severity:         3,
		Symptoms:         []string{"cough", "fever", "chills", "shortness of breath", "chest pain"},
		RedFlags:         []string{"rapid breathing", "confusion", "bluish lips"},
		CommonTreatments: []string{"Antibiotics for bacterial pneumonia", "Rest and fluids", "Fever reducers"},
		WhenToSeekHelp:   "See a doctor promptly; seek emergency care if breathing is difficult.",
	},
	"Urinary Tract Infection": {
		Description:      "A bacterial infection of the bladder or urinary tract.",
		Severity:         2,
		Symptoms:         []string{"painful urination", "frequent urination", "abdominal pain", "fever"},
		RedFlags:         []string{"back or flank pain with fever", "blood in urine"},
		CommonTreatments: []string{"Antibiotics", "Increased fluid intake"},
		WhenToSeekHelp:   "See a doctor within a day or two, sooner if fever or back pain develops.",
	},
	"Strep Throat": {
		Description:      "A bacterial throat infection causing a sudden painful sore throat and fever.",
		Severity:         2,
		Symptoms:         []string{"sore throat", "fever"},
		RedFlags:         []string{"difficulty swallowing saliva", "drooling", "neck swelling"},
		CommonTreatments: []string{"Antibiotics", "Pain relief", "Warm fluids"},
		WhenToSeekHelp:   "See a doctor for a throat swab if fever accompanies a sore throat.",
	},
	"Gastroenteritis": {
		Description:      "Inflammation of the stomach and intestines, usually viral, causing diarrhea and vomiting.",
		Severity:         2,
		Symptoms:         []string{"diarrhea", "vomiting", "nausea", "abdominal pain", "fever"},
		RedFlags:         []string{"signs of dehydration", "blood in stool", "vomiting for more than two days"},
		CommonTreatments: []string{"Oral rehydration", "Bland diet", "Rest"},
		WhenToSeekHelp:   "Seek care if you cannot keep fluids down or show signs of dehydration.",
	},
	"Bronchitis": {
		Description:      "Inflammation of the bronchial tubes causing a persistent cough, often after a cold.",
		Severity:         2,
		Symptoms:         []string{"cough", "wheezing", "fatigue"},
		RedFlags:         []string{"coughing blood", "shortness of breath at rest"},
		CommonTreatments: []string{"Rest and fluids", "Humidified air", "Cough suppressants at night"},
		WhenToSeekHelp:   "See a doctor if the cough lasts more than three weeks or you have a fever.",
	},
	"Asthma": {
		Description:      "A chronic condition in which the airways narrow and swell, causing wheezing and breathlessness.",
		Severity:         3,
		Symptoms:         []string{"wheezing", "shortness of breath", "cough"},
		RedFlags:         []string{"reliever inhaler not helping", "unable to speak in full sentences"},
		CommonTreatments: []string{"Reliever inhaler", "Preventer inhaler", "Avoiding known triggers"},
		WhenToSeekHelp:   "Seek emergency care if the reliever inhaler does not ease symptoms.",
	},
	"Allergic Rhinitis": {
		Description:      "Hay fever: an allergic response causing sneezing, runny nose and itchy eyes.",
		Severity:         1,
		Symptoms:         []string{"sneezing", "runny nose", "itchy eyes"},
		RedFlags:         []string{"wheezing", "swelling of the face or lips"},
		CommonTreatments: []string{"Antihistamines", "Nasal steroid sprays", "Allergen avoidance"},
		WhenToSeekHelp:   "See a doctor if over-the-counter treatments do not control symptoms.",
	},
	"Anemia": {
		Description:      "A shortage of healthy red blood cells, reducing oxygen delivery to the body.",
		Severity:         2,
		Symptoms:         []string{"fatigue", "dizziness"},
		RedFlags:         []string{"fainting", "chest pain", "black stools"},
		CommonTreatments: []string{"Iron supplements", "Dietary changes", "Treating the underlying cause"},
		WhenToSeekHelp:   "Book an appointment for blood tests if tiredness persists.",
	},
	"Hypothyroidism": {
		Description:      "An underactive thyroid gland producing too little thyroid hormone.",
		Severity:         2,
		Symptoms:         []string{"fatigue", "constipation"},
		RedFlags:         []string{"extreme drowsiness", "confusion"},
		CommonTreatments: []string{"Thyroid hormone replacement", "Regular blood tests"},
		WhenToSeekHelp:   "Book an appointment for a thyroid blood test if symptoms persist.",
	},
	"Depression": {
		Description:      "A mood disorder causing persistent low mood and loss of interest in activities.",
		Severity:         3,
		Symptoms:         []string{"low mood", "fatigue", "loss of appetite"},
		RedFlags:         []string{"thoughts of self-harm", "thoughts of suicide"},
		CommonTreatments: []string{"Talking therapies", "Antidepressant medication", "Regular physical activity"},
		WhenToSeekHelp:   "Seek help urgently if you have thoughts of harming yourself.",
	},
	"Food Poisoning": {
		Description:      "Illness from eating contaminated food, causing vomiting and diarrhea.",
		Severity:         2,
		Symptoms:         []string{"nausea", "vomiting", "diarrhea", "abdominal pain"},
		RedFlags:         []string{"bloody diarrhea", "high fever", "signs of dehydration"},
		CommonTreatments: []string{"Oral rehydration", "Rest", "Gradual return to eating"},
		WhenToSeekHelp:   "Seek care if symptoms are severe or last more than three days.",
	},
	"Appendicitis": {
		Description:      "Inflammation of the appendix, typically causing pain that moves to the lower right abdomen.",
		Severity:         4,
		Symptoms:         []string{"abdominal pain", "nausea", "vomiting", "loss of appetite", "fever"},
		RedFlags:         []string{"pain worsening over hours", "rigid abdomen", "high fever"},
		CommonTreatments: []string{"Emergency surgical assessment", "Appendectomy"},
		WhenToSeekHelp:   "Go to an emergency department if abdominal pain is severe or worsening.",
	},
	"Irritable Bowel Syndrome": {
		Description:      "A common long-term condition affecting the digestive system with cramping, bloating, diarrhea or constipation.",
		Severity:         2,
		Symptoms:         []string{"abdominal pain", "diarrhea", "constipation"},
		RedFlags:         []string{"unexplained weight loss", "rectal bleeding"},
		CommonTreatments: []string{"Dietary changes", "Fiber supplements", "Stress management"},
		WhenToSeekHelp:   "Book an appointment if bowel habits change for more than a few weeks.",
	},
	"GERD": {
		Description:      "Gastroesophageal reflux disease: stomach acid flowing back into the esophagus causing heartburn.",
		Severity:         2,
		Symptoms:         []string{"heartburn", "chest pain", "abdominal pain"},
		RedFlags:         []string{"difficulty swallowing", "vomiting blood", "unexplained weight loss"},
		CommonTreatments: []string{"Antacids", "Proton pump inhibitors", "Avoiding late meals"},
		WhenToSeekHelp:   "See a doctor if heartburn occurs most days for three weeks or more.",
	},
	"Heart Attack": {
		Description:      "A blockage of blood flow to the heart muscle, a medical emergency.",
		Severity:         5,
		Symptoms:         []string{"chest pain", "shortness of breath"},
		RedFlags:         []string{"chest pain spreading to arm, jaw or back", "sweating with chest pain", "collapse"},
		CommonTreatments: []string{"Emergency medical services", "Aspirin if advised by emergency services"},
		WhenToSeekHelp:   "Call emergency services immediately.",
	},
	"Angina": {
		Description:      "Chest pain caused by reduced blood flow to the heart, often triggered by exertion.",
		Severity:         4,
		Symptoms:         []string{"chest pain"},
		RedFlags:         []string{"pain at rest", "pain lasting more than 15 minutes"},
		CommonTreatments: []string{"Nitrate spray as prescribed", "Cardiology assessment", "Lifestyle changes"},
		WhenToSeekHelp:   "Call emergency services if chest pain lasts longer than usual or occurs at rest.",
	},
	"Pulmonary Embolism": {
		Description:      "A blood clot blocking an artery in the lungs, a medical emergency.",
		Severity:         5,
		Symptoms:         []string{"shortness of breath", "chest pain"},
		RedFlags:         []string{"sudden breathlessness", "coughing blood", "collapse"},
		CommonTreatments: []string{"Emergency assessment", "Anticoagulant medication"},
		WhenToSeekHelp:   "Call emergency services immediately.",
	},
	"Anxiety Disorder": {
		Description:      "Persistent, excessive worry that interferes with daily life, often with physical symptoms.",
		Severity:         2,
		Symptoms:         []string{"excessive worry", "palpitations", "shortness of breath", "chest pain"},
		RedFlags:         []string{"chest pain that does not settle", "thoughts of self-harm"},
		CommonTreatments: []string{"Talking therapies", "Breathing exercises", "Medication if recommended"},
		WhenToSeekHelp:   "Book an appointment if worry affects daily life; rule out heart causes for chest pain.",
	},
	"Vertigo": {
		Description:      "A sensation that you or your surroundings are spinning, usually from an inner ear problem.",
		Severity:         2,
		Symptoms:         []string{"dizziness", "nausea"},
		RedFlags:         []string{"slurred speech", "weakness", "double vision"},
		CommonTreatments: []string{"Repositioning maneuvers", "Vestibular exercises", "Anti-sickness medication"},
		WhenToSeekHelp:   "Seek emergency care if dizziness comes with weakness, numbness or speech problems.",
	},
	"Dehydration": {
		Description:      "The body losing more fluid than it takes in.",
		Severity:         2,
		Symptoms:         []string{"dizziness", "excessive thirst", "confusion", "fatigue"},
		RedFlags:         []string{"no urine for eight hours", "confusion", "fainting"},
		CommonTreatments: []string{"Oral rehydration", "Small frequent sips of water"},
		WhenToSeekHelp:   "Seek care if fluids cannot be kept down or confusion develops.",
	},
	"Stroke": {
		Description:      "Interrupted blood supply to part of the brain, a medical emergency.",
		Severity:         5,
		Symptoms:         []string{"numbness", "confusion", "vision changes", "blurred vision", "dizziness"},
		RedFlags:         []string{"face drooping", "arm weakness", "speech difficulty"},
		CommonTreatments: []string{"Emergency medical services", "Clot-dissolving treatment in hospital"},
		WhenToSeekHelp:   "Call emergency services immediately and note when symptoms started.",
	},
	"Arrhythmia": {
		Description:      "An irregular heartbeat that may feel like fluttering, racing or skipped beats.",
		Severity:         4,
		Symptoms:         []string{"palpitations", "dizziness", "shortness of breath"},
		RedFlags:         []string{"fainting", "chest pain", "palpitations with breathlessness"},
		CommonTreatments: []string{"ECG assessment", "Rate or rhythm control medication"},
		WhenToSeekHelp:   "Seek urgent care if palpitations come with chest pain, fainting or breathlessness.",
	},
	"Allergic Reaction": {
		Description:      "An immune response to a substance, ranging from rash to life-threatening anaphylaxis.",
		Severity:         2,
		Symptoms:         []string{"rash", "swelling", "itchy eyes"},
		RedFlags:         []string{"swelling of lips or tongue", "difficulty breathing", "collapse"},
		CommonTreatments: []string{"Antihistamines", "Avoiding the trigger", "Adrenaline auto-injector if prescribed"},
		WhenToSeekHelp:   "Call emergency services if breathing is affected or the face swells.",
	},
	"Eczema": {
		Description:      "A condition causing dry, itchy, inflamed skin.",
		Severity:         1,
		Symptoms:         []string{"rash"},
		RedFlags:         []string{"weeping or crusted skin", "fever with rash"},
		CommonTreatments: []string{"Emollients", "Topical steroids", "Avoiding irritants"},
		WhenToSeekHelp:   "See a doctor if the skin looks infected or treatment is not helping.",
	},
	"Arthritis": {
		Description:      "Inflammation of one or more joints causing pain and stiffness.",
		Severity:         2,
		Symptoms:         []string{"joint pain", "swelling"},
		RedFlags:         []string{"hot swollen joint with fever"},
		CommonTreatments: []string{"Anti-inflammatory pain relief", "Physiotherapy", "Regular gentle exercise"},
		WhenToSeekHelp:   "Book an appointment if joint pain persists for more than a few weeks.",
	},
	"Gout": {
		Description:      "A form of arthritis caused by uric acid crystals, often starting in the big toe.",
		Severity:         2,
		Symptoms:         []string{"joint pain", "swelling"},
		RedFlags:         []string{"fever with a hot joint"},
		CommonTreatments: []string{"Anti-inflammatory medication", "Rest and elevation", "Reducing alcohol intake"},
		WhenToSeekHelp:   "See a doctor within a day or two of a sudden painful swollen joint.",
	},
	"Muscle Strain": {
		Description:      "Overstretching or tearing of a muscle, commonly in the back or neck.",
		Severity:         1,
		Symptoms:         []string{"back pain", "muscle aches", "stiff neck"},
		RedFlags:         []string{"numbness in the legs", "loss of bladder control"},
		CommonTreatments: []string{"Rest", "Ice then heat", "Over-the-counter pain relief"},
		WhenToSeekHelp:   "See a doctor if pain does not improve after a week.",
	},
	"Kidney Stones": {
		Description:      "Hard deposits forming in the kidneys that can cause severe pain when passed.",
		Severity:         3,
		Symptoms:         []string{"back pain", "painful urination"},
		RedFlags:         []string{"fever with flank pain", "unable to pass urine"},
		CommonTreatments: []string{"Pain relief", "Increased fluid intake", "Urology assessment"},
		WhenToSeekHelp:   "Seek urgent care if pain is severe or comes with fever.",
	},
	"Diabetes": {
		Description:      "A condition in which blood sugar levels are too high.",
		Severity:         3,
		Symptoms:         []string{"excessive thirst", "frequent urination", "blurred vision", "fatigue"},
		RedFlags:         []string{"vomiting with abdominal pain", "fruity-smelling breath", "confusion"},
		CommonTreatments: []string{"Blood sugar testing", "Dietary changes", "Medication or insulin"},
		WhenToSeekHelp:   "Book an appointment for a blood test; seek urgent care if vomiting or confused.",
	},
	"Deep Vein Thrombosis": {
		Description:      "A blood clot in a deep vein, usually in the leg.",
		Severity:         4,
		Symptoms:         []string{"swelling"},
		RedFlags:         []string{"sudden breathlessness", "chest pain"},
		CommonTreatments: []string{"Urgent ultrasound assessment", "Anticoagulant medication"},
		WhenToSeekHelp:   "Seek urgent care the same day; call emergency services if breathless.",
	},
}
