package docs

import (
	"encoding/json"
	"strings"
	"testing"
)

type operation struct {
	Security []map[string][]string `json:"security"`
}

func TestGatedRoutesDeclareSecurity(t *testing.T) {
	var doc struct {
		Paths               map[string]map[string]operation `json:"paths"`
		SecurityDefinitions map[string]json.RawMessage      `json:"securityDefinitions"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger doc is not valid JSON: %v", err)
	}

	for _, name := range []string{"SessionCookie", "BearerToken"} {
		if _, ok := doc.SecurityDefinitions[name]; !ok {
			t.Fatalf("missing security definition %s", name)
		}
	}

	for path, ops := range doc.Paths {
		gated := strings.HasPrefix(path, "/api/admin/") || path == "/api/auth/user"
		for method, op := range ops {
			if gated && len(op.Security) == 0 {
				t.Errorf("%s %s is session-gated but declares no security", method, path)
			}
			if !gated && len(op.Security) != 0 {
				t.Errorf("%s %s is public but declares security", method, path)
			}
			for _, req := range op.Security {
				for name := range req {
					if _, ok := doc.SecurityDefinitions[name]; !ok {
						t.Errorf("%s %s references unknown security %s", method, path, name)
					}
				}
			}
		}
	}
}
