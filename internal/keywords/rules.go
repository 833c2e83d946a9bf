package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

// dictEntry is one curated term: its category plus the synonyms and spelling
// variants that canonicalize to it.
type dictEntry struct {
	category types.KeywordCategory
	synonyms []string
}

// dictionary is the curated term list for the rule-based path. Terms are
// canonical and lower-case; matching is word-bounded against normalized text.
var dictionary = map[string]dictEntry{
	// languages and core skills
	"python":     {category: types.CategoryHardSkill},
	"go":         {category: types.CategoryHardSkill, synonyms: []string{"golang"}},
	"java":       {category: types.CategoryHardSkill},
	"javascript": {category: types.CategoryHardSkill, synonyms: []string{"js"}},
	"typescript": {category: types.CategoryHardSkill, synonyms: []string{"ts"}},
	"sql":        {category: types.CategoryHardSkill},
	"c++":        {category: types.CategoryHardSkill, synonyms: []string{"cpp"}},
	"c#":         {category: types.CategoryHardSkill, synonyms: []string{"csharp"}},
	"ruby":       {category: types.CategoryHardSkill},
	"rust":       {category: types.CategoryHardSkill},
	"php":        {category: types.CategoryHardSkill},
	"kotlin":     {category: types.CategoryHardSkill},
	"swift":      {category: types.CategoryHardSkill},
	"scala":      {category: types.CategoryHardSkill},
	"html":       {category: types.CategoryHardSkill},
	"css":        {category: types.CategoryHardSkill},

	// ai / ml
	"machine learning":   {category: types.CategoryHardSkill, synonyms: []string{"ml", "aprendizado de maquina"}},
	"deep learning":      {category: types.CategoryHardSkill},
	"llm":                {category: types.CategoryHardSkill, synonyms: []string{"llms", "large language models", "large language model"}},
	"llm orchestration":  {category: types.CategoryHardSkill},
	"nlp":                {category: types.CategoryHardSkill, synonyms: []string{"natural language processing"}},
	"prompt engineering": {category: types.CategoryHardSkill},
	"rag":                {category: types.CategoryHardSkill, synonyms: []string{"retrieval augmented generation", "retrieval-augmented generation"}},
	"generative ai":      {category: types.CategoryDomainTerm, synonyms: []string{"genai", "ia generativa"}},
	"computer vision":    {category: types.CategoryHardSkill},
	"pytorch":            {category: types.CategoryTool},
	"tensorflow":         {category: types.CategoryTool},
	"langchain":          {category: types.CategoryTool},
	"openai":             {category: types.CategoryTool},

	// data
	"data analysis":    {category: types.CategoryHardSkill, synonyms: []string{"analise de dados"}},
	"data engineering": {category: types.CategoryHardSkill, synonyms: []string{"engenharia de dados"}},
	"etl":              {category: types.CategoryHardSkill},
	"pandas":           {category: types.CategoryTool},
	"spark":            {category: types.CategoryTool, synonyms: []string{"apache spark", "pyspark"}},
	"airflow":          {category: types.CategoryTool, synonyms: []string{"apache airflow"}},
	"kafka":            {category: types.CategoryTool, synonyms: []string{"apache kafka"}},
	"power bi":         {category: types.CategoryTool, synonyms: []string{"powerbi"}},
	"tableau":          {category: types.CategoryTool},
	"excel":            {category: types.CategoryTool},

	// infra and tooling
	"aws":        {category: types.CategoryTool, synonyms: []string{"amazon web services"}},
	"azure":      {category: types.CategoryTool, synonyms: []string{"microsoft azure"}},
	"gcp":        {category: types.CategoryTool, synonyms: []string{"google cloud", "google cloud platform"}},
	"docker":     {category: types.CategoryTool},
	"kubernetes": {category: types.CategoryTool, synonyms: []string{"k8s"}},
	"terraform":  {category: types.CategoryTool},
	"git":        {category: types.CategoryTool},
	"ci/cd":      {category: types.CategoryTool, synonyms: []string{"cicd", "continuous integration", "continuous delivery"}},
	"linux":      {category: types.CategoryTool},
	"jenkins":    {category: types.CategoryTool},
	"grafana":    {category: types.CategoryTool},
	"prometheus": {category: types.CategoryTool},

	// databases
	"postgresql":    {category: types.CategoryTool, synonyms: []string{"postgres"}},
	"mysql":         {category: types.CategoryTool},
	"mongodb":       {category: types.CategoryTool, synonyms: []string{"mongo"}},
	"redis":         {category: types.CategoryTool},
	"elasticsearch": {category: types.CategoryTool},

	// frameworks
	"react":   {category: types.CategoryTool, synonyms: []string{"react.js", "reactjs"}},
	"node.js": {category: types.CategoryTool, synonyms: []string{"node", "nodejs"}},
	"django":  {category: types.CategoryTool},
	"fastapi": {category: types.CategoryTool},
	"flask":   {category: types.CategoryTool},
	"spring":  {category: types.CategoryTool, synonyms: []string{"spring boot"}},
	"graphql": {category: types.CategoryTool},
	"rest":    {category: types.CategoryHardSkill, synonyms: []string{"rest api", "restful", "apis rest"}},
	"grpc":    {category: types.CategoryHardSkill},

	// ways of working
	"agile":              {category: types.CategoryDomainTerm, synonyms: []string{"metodologias ageis", "agil"}},
	"scrum":              {category: types.CategoryDomainTerm},
	"kanban":             {category: types.CategoryDomainTerm},
	"microservices":      {category: types.CategoryDomainTerm, synonyms: []string{"microservicos", "microsservicos"}},
	"devops":             {category: types.CategoryDomainTerm},
	"observability":      {category: types.CategoryDomainTerm, synonyms: []string{"observabilidade"}},
	"product management": {category: types.CategoryDomainTerm, synonyms: []string{"gestao de produto"}},

	// soft skills
	"communication":   {category: types.CategorySoftSkill, synonyms: []string{"comunicacao"}},
	"leadership":      {category: types.CategorySoftSkill, synonyms: []string{"lideranca"}},
	"teamwork":        {category: types.CategorySoftSkill, synonyms: []string{"trabalho em equipe", "collaboration"}},
	"problem solving": {category: types.CategorySoftSkill, synonyms: []string{"resolucao de problemas", "problem-solving"}},
	"ownership":       {category: types.CategorySoftSkill},
	"mentoring":       {category: types.CategorySoftSkill, synonyms: []string{"mentoria"}},
}

// canonicalTerms maps every dictionary synonym (and each canonical term to
// itself) onto its canonical form.
var canonicalTerms = func() map[string]string {
	m := make(map[string]string)
	for term, entry := range dictionary {
		m[term] = term
		for _, syn := range entry.synonyms {
			m[syn] = term
		}
	}
	return m
}()

// Canonicalize folds a term to lower case and resolves known synonyms.
func Canonicalize(term string) string {
	lower := strings.ToLower(strings.TrimSpace(term))
	if canonical, ok := canonicalTerms[lower]; ok {
		return canonical
	}
	return lower
}

// CategoryOf returns the curated category for a canonical term, or the given
// default when the term is not in the dictionary.
func CategoryOf(term string, fallback types.KeywordCategory) types.KeywordCategory {
	if entry, ok := dictionary[term]; ok {
		return entry.category
	}
	return fallback
}

// normalizePattern strips everything that is not part of a matchable token.
// "+", "#", "." and "/" survive so terms like c++, c#, node.js and ci/cd keep
// their boundaries.
var normalizePattern = regexp.MustCompile(`[^a-z0-9+#./-]+`)

// accentReplacer folds the Portuguese accented vowels the dictionary entries
// rely on. Full Unicode folding is not needed for word-list matching.
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u",
	"ç", "c",
)

// ExtractWithRules runs the deterministic dictionary extractor. It is the
// fallback when every inference provider is exhausted and it never fails:
// worst case is an empty keyword set.
func ExtractWithRules(text string, language types.Language) *types.ExtractedKeywords {
	normalized := " " + normalizePattern.ReplaceAllString(accentReplacer.Replace(strings.ToLower(text)), " ") + " "

	seen := make(map[string]bool)
	var found []types.Keyword
	for _, canonical := range orderedTerms() {
		entry := dictionary[canonical]
		for _, variant := range append([]string{canonical}, entry.synonyms...) {
			if strings.Contains(normalized, " "+variant+" ") {
				if !seen[canonical] {
					seen[canonical] = true
					found = append(found, types.Keyword{Term: canonical, Category: entry.category})
				}
				break
			}
		}
	}

	return &types.ExtractedKeywords{Keywords: found, Source: types.SourceRules, Language: language}
}

// orderedTerms returns the dictionary keys in a stable order so repeated runs
// over the same posting produce identical keyword sets.
func orderedTerms() []string {
	terms := make([]string, 0, len(dictionary))
	for term := range dictionary {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
