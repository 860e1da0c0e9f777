package contracts

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"listing-admin-service/internal/core/domain"
	"listing-admin-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи зарегистрированных схем.
const (
	ListingSchema         = "Listing/1.0.0"
	ListingListSchema     = "ListingList/1.0.0"
	InterestRequestSchema = "InterestRequest/1.0.0"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	// Сначала регистрируем все схемы как ресурсы, чтобы работали $ref между ними
	var paths []string
	err := fs.WalkDir(schemas.SchemasFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemas.SchemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(schemas.BaseURL+path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	for _, path := range paths {
		schema, err := compiler.Compile(schemas.BaseURL + path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}
		compiledSchemas[generateKeyFromPath(path)] = schema
	}
}

// generateKeyFromPath преобразует путь вида "listing-list/v1.json" в ключ "ListingList/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}

	version := strings.Replace(parts[1], "v", "", 1) + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

// Validate проверяет уже декодированный JSON по схеме.
func Validate(key string, v any) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' not found", key)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

var quotedName = regexp.MustCompile(`'([^']+)'`)

// Issues раскладывает ошибку схемы на конечные проблемы в порядке документа:
// индексы массивов сравниваются как числа, имена полей по алфавиту.
// Внутри одного поля вложенная проблема идет раньше проблемы родителя.
func Issues(err error) []domain.ValidationIssue {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		if err == nil {
			return nil
		}
		return []domain.ValidationIssue{{Path: "", Message: err.Error()}}
	}

	var issues []domain.ValidationIssue
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			issues = append(issues, leafIssues(e)...)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.SliceStable(issues, func(i, j int) bool {
		return pathBefore(issues[i].Path, issues[j].Path)
	})
	return issues
}

func leafIssues(e *jsonschema.ValidationError) []domain.ValidationIssue {
	// Для required путь указывает на родителя, дописываем имя поля
	if strings.HasSuffix(e.KeywordLocation, "/required") {
		var out []domain.ValidationIssue
		for _, m := range quotedName.FindAllStringSubmatch(e.Message, -1) {
			out = append(out, domain.ValidationIssue{Path: e.InstanceLocation + "/" + m[1], Message: "required"})
		}
		if len(out) > 0 {
			return out
		}
	}
	return []domain.ValidationIssue{{Path: e.InstanceLocation, Message: e.Message}}
}

// pathBefore сравнивает JSON pointer'ы посегментно.
// Если один путь - префикс другого, первым идет более длинный.
func pathBefore(a, b string) bool {
	as, bs := segments(a), segments(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aErr := strconv.Atoi(as[i])
		bi, bErr := strconv.Atoi(bs[i])
		if aErr == nil && bErr == nil {
			return ai < bi
		}
		return as[i] < bs[i]
	}
	return len(as) > len(bs)
}

func segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}
