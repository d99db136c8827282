// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import "strings"

// Lexicon holds the static synonym, domain-cluster, and abbreviation
// tables consulted during expansion. It is built once at package
// initialization, never mutated afterwards, and shared by reference.
type Lexicon struct {
	// synonyms maps a lowercased phrase to its synonym list.
	synonyms map[string][]string

	// domains maps a domain key (lowercased, spaces as underscores)
	// to its related-term list. Consulted only in aggressive mode.
	domains map[string][]string

	// abbreviations maps an uppercase abbreviation to its lowercase
	// full phrase. abbrevOrder preserves declaration order so reverse
	// lookups scan deterministically.
	abbreviations map[string]string
	abbrevOrder   []string
}

var defaultLexicon = newLexicon()

func newLexicon() *Lexicon {
	lex := &Lexicon{
		synonyms:      academicSynonyms,
		domains:       domainClusters,
		abbreviations: make(map[string]string, len(abbreviationTable)),
		abbrevOrder:   make([]string, 0, len(abbreviationTable)),
	}
	for _, e := range abbreviationTable {
		lex.abbreviations[e.abbr] = e.full
		lex.abbrevOrder = append(lex.abbrevOrder, e.abbr)
	}
	return lex
}

// synonymsFor returns the synonym list for a lowercased phrase.
func (l *Lexicon) synonymsFor(phrase string) ([]string, bool) {
	syns, ok := l.synonyms[phrase]
	return syns, ok
}

// domainTerms returns the related-term list for a domain key.
func (l *Lexicon) domainTerms(key string) ([]string, bool) {
	terms, ok := l.domains[key]
	return terms, ok
}

// expandAbbreviation returns the full phrase for an uppercase abbreviation.
func (l *Lexicon) expandAbbreviation(abbr string) (string, bool) {
	full, ok := l.abbreviations[abbr]
	return full, ok
}

// isAbbreviation reports whether the uppercase form is a known abbreviation.
func (l *Lexicon) isAbbreviation(abbr string) bool {
	_, ok := l.abbreviations[abbr]
	return ok
}

// abbreviationsFor returns every abbreviation whose full phrase equals the
// lowercased input, in declaration order.
func (l *Lexicon) abbreviationsFor(phrase string) []string {
	var matches []string
	for _, abbr := range l.abbrevOrder {
		if phrase == strings.ToLower(l.abbreviations[abbr]) {
			matches = append(matches, abbr)
		}
	}
	return matches
}

// academicSynonyms maps lowercased phrases to related phrasings across the
// major arXiv fields. Values are ordered; query building quotes the first
// few per term.
var academicSynonyms = map[string][]string{
	// AI/ML terms
	"artificial intelligence":     {"AI", "machine intelligence", "computational intelligence", "intelligent systems"},
	"machine learning":            {"ML", "statistical learning", "automated learning", "pattern recognition"},
	"deep learning":               {"neural networks", "deep neural networks", "DNN", "artificial neural networks", "ANN"},
	"natural language processing": {"NLP", "computational linguistics", "language processing", "text processing"},
	"computer vision":             {"CV", "image processing", "visual computing", "pattern recognition", "image analysis"},
	"reinforcement learning":      {"RL", "reward learning", "sequential decision making", "policy learning"},
	"neural network":              {"neural net", "connectionist", "artificial neural network", "ANN", "deep network"},
	"transformer":                 {"attention mechanism", "self-attention", "bert", "gpt", "language model"},
	"large language model":        {"LLM", "foundation model", "generative model", "language generation"},
	"generative ai":               {"generative model", "text generation", "image generation", "content generation"},

	// Computer science terms
	"algorithm":             {"algorithmic", "computational method", "procedure", "technique"},
	"optimization":          {"optimisation", "minimization", "maximization", "objective function"},
	"distributed computing": {"parallel computing", "cluster computing", "grid computing", "cloud computing"},
	"cybersecurity":         {"information security", "network security", "computer security", "cyber defense"},
	"blockchain":            {"distributed ledger", "cryptocurrency", "bitcoin", "ethereum", "smart contracts"},
	"quantum computing":     {"quantum computation", "quantum algorithms", "quantum information", "qubits"},

	// Data science terms
	"data science": {"data analytics", "data mining", "big data", "data analysis", "statistical analysis"},
	"data mining":  {"knowledge discovery", "pattern mining", "data exploration", "information extraction"},
	"big data":     {"large-scale data", "massive data", "data processing", "scalable analytics"},
	"statistics":   {"statistical analysis", "statistical methods", "probability", "inference"},

	// Physics terms
	"quantum mechanics": {"quantum physics", "quantum theory", "wave mechanics", "matrix mechanics"},
	"relativity":        {"general relativity", "special relativity", "einstein", "spacetime"},
	"particle physics":  {"high energy physics", "elementary particles", "quantum field theory"},
	"condensed matter":  {"solid state physics", "many-body physics", "materials science"},

	// Mathematics terms
	"linear algebra": {"matrix theory", "vector spaces", "eigenvalues", "linear transformations"},
	"calculus":       {"differential calculus", "integral calculus", "mathematical analysis"},
	"graph theory":   {"network theory", "combinatorial optimization", "discrete mathematics"},
	"topology":       {"algebraic topology", "differential topology", "geometric topology"},

	// Biology/medicine terms
	"bioinformatics": {"computational biology", "systems biology", "genomics", "proteomics"},
	"genetics":       {"genomics", "molecular genetics", "heredity", "DNA analysis"},
	"neuroscience":   {"brain research", "cognitive science", "neural networks", "neuroimaging"},
	"epidemiology":   {"disease modeling", "public health", "infectious disease", "population health"},

	// Engineering terms
	"robotics":          {"autonomous systems", "robot control", "mechatronics", "automation"},
	"control systems":   {"feedback control", "system dynamics", "automatic control", "regulation"},
	"signal processing": {"digital signal processing", "DSP", "filtering", "spectral analysis"},
}

// domainClusters groups topically related terms under a domain key.
var domainClusters = map[string][]string{
	"machine_learning": {
		"supervised learning", "unsupervised learning", "semi-supervised", "transfer learning",
		"feature selection", "dimensionality reduction", "cross-validation", "overfitting",
		"regularization", "gradient descent", "backpropagation", "ensemble methods",
	},
	"deep_learning": {
		"convolutional neural networks", "CNN", "recurrent neural networks", "RNN", "LSTM", "GRU",
		"autoencoder", "generative adversarial networks", "GAN", "attention mechanism",
		"batch normalization", "dropout", "activation function", "loss function",
	},
	"nlp": {
		"tokenization", "part-of-speech", "named entity recognition", "sentiment analysis",
		"machine translation", "question answering", "text classification", "language model",
		"word embedding", "BERT", "GPT", "transformer", "semantic parsing",
	},
	"computer_vision": {
		"object detection", "image classification", "semantic segmentation", "face recognition",
		"optical character recognition", "OCR", "image processing", "feature extraction",
		"edge detection", "histogram", "convolution", "pooling",
	},
	"quantum": {
		"qubit", "superposition", "entanglement", "quantum gate", "quantum circuit",
		"quantum algorithm", "quantum supremacy", "quantum error correction", "decoherence",
	},
}

// abbreviationTable lists common academic abbreviations. Declaration order
// matters: reverse lookups report matches in this order.
var abbreviationTable = []struct {
	abbr string
	full string
}{
	{"AI", "artificial intelligence"},
	{"ML", "machine learning"},
	{"DL", "deep learning"},
	{"NLP", "natural language processing"},
	{"CV", "computer vision"},
	{"RL", "reinforcement learning"},
	{"CNN", "convolutional neural network"},
	{"RNN", "recurrent neural network"},
	{"LSTM", "long short-term memory"},
	{"GAN", "generative adversarial network"},
	{"LLM", "large language model"},
	{"NER", "named entity recognition"},
	{"OCR", "optical character recognition"},
	{"API", "application programming interface"},
	{"GPU", "graphics processing unit"},
	{"CPU", "central processing unit"},
	{"IoT", "internet of things"},
	{"AR", "augmented reality"},
	{"VR", "virtual reality"},
}
