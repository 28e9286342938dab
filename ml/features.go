package ml

// FeatureCount is the width of the row the classifier consumes.
const FeatureCount = 13

// Field identifies one input of the heart-disease form.
type Field string

const (
	FieldAge      Field = "age"
	FieldSex      Field = "sex"
	FieldCP       Field = "cp"
	FieldTrestbps Field = "trestbps"
	FieldChol     Field = "chol"
	FieldFBS      Field = "fbs"
	FieldRestECG  Field = "restecg"
	FieldThalach  Field = "thalach"
	FieldExang    Field = "exang"
	FieldOldpeak  Field = "oldpeak"
	FieldSlope    Field = "slope"
	FieldCA       Field = "ca"
	FieldThal     Field = "thal"
)

var featureOrder = [FeatureCount]Field{
	FieldAge,
	FieldSex,
	FieldCP,
	FieldTrestbps,
	FieldChol,
	FieldFBS,
	FieldRestECG,
	FieldThalach,
	FieldExang,
	FieldOldpeak,
	FieldSlope,
	FieldCA,
	FieldThal,
}

var fieldLabels = map[Field]string{
	FieldAge:      "Usia",
	FieldSex:      "Jenis kelamin",
	FieldCP:       "Jenis nyeri dada",
	FieldTrestbps: "Tekanan darah istirahat (mmHg)",
	FieldChol:     "Serum kolestrol (mg/dL)",
	FieldFBS:      "Gula darah puasa >120 mg/dL?",
	FieldRestECG:  "Hasil elektrokardiografi istirahat",
	FieldThalach:  "Denyut jantung maksimum",
	FieldExang:    "Nyeri dada yang dipicu oleh olahraga",
	FieldOldpeak:  "Oldpeak",
	FieldSlope:    "Kemiringan puncak segmen ST",
	FieldCA:       "Pembuluh besar yang diwarnai fluoroskopi",
	FieldThal:     "Hasil tes Stres Thalium",
}

// Label returns the form label shown next to the field.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Index returns the position of the field in the feature vector, or -1.
func (f Field) Index() int {
	for i, name := range featureOrder {
		if name == f {
			return i
		}
	}
	return -1
}

// IsCategorical reports whether the field is filled from a fixed option list.
func (f Field) IsCategorical() bool {
	_, ok := codeTables[f]
	return ok
}

// FeatureVector is one fully encoded patient row in schema order.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as the row handed to a classifier.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Get returns the value stored for field.
func (v FeatureVector) Get(f Field) (float64, bool) {
	idx := f.Index()
	if idx < 0 {
		return 0, false
	}
	return v[idx], true
}

// FeatureNames returns the schema order of the feature vector.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	for i, f := range featureOrder {
		names[i] = string(f)
	}
	return names
}

// Fields returns the form fields in schema order.
func Fields() []Field {
	out := make([]Field, FeatureCount)
	copy(out, featureOrder[:])
	return out
}
