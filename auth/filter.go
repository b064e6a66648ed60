package auth

import (
	"net/http"
	"strings"

	restful "github.com/emicklei/go-restful/v3"
)

// claimsAttribute is the request attribute under which the verified claims
// are stored. The token is verified exactly once, by Filter; RequireRoles
// reads the attribute and never re-parses the token.
const claimsAttribute = "auth.claims"

// Filter creates a go-restful FilterFunction for bearer-token authentication.
// Every rejection path returns the same generic 401 body: the client learns
// nothing about whether the token was missing, malformed or expired.
func Filter(tokens *TokenService) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		authHeader := req.HeaderParameter("Authorization")
		if authHeader == "" {
			rejectUnauthenticated(resp)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			rejectUnauthenticated(resp)
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			rejectUnauthenticated(resp)
			return
		}

		req.SetAttribute(claimsAttribute, claims)
		chain.ProcessFilter(req, resp)
	}
}

// RequireRoles creates a FilterFunction that allows the request through when
// the authenticated identity holds at least one of the given role values
// (logical OR). With no values declared it allows unconditionally. It relies
// on Filter having run earlier on the chain; a missing or ill-typed claims
// attribute is denied like any other role failure.
func RequireRoles(values ...string) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		if len(values) == 0 {
			chain.ProcessFilter(req, resp)
			return
		}

		claims, ok := ClaimsFromRequest(req)
		if !ok || !claims.HasAnyRole(values...) {
			_ = resp.WriteHeaderAndJson(http.StatusForbidden,
				map[string]string{"message": "forbidden"}, restful.MIME_JSON)
			return
		}

		chain.ProcessFilter(req, resp)
	}
}

// ClaimsFromRequest returns the claims attached by Filter, if any.
func ClaimsFromRequest(req *restful.Request) (*Claims, bool) {
	claims, ok := req.Attribute(claimsAttribute).(*Claims)
	return claims, ok
}

func rejectUnauthenticated(resp *restful.Response) {
	_ = resp.WriteHeaderAndJson(http.StatusUnauthorized,
		map[string]string{"message": "not authenticated"}, restful.MIME_JSON)
}
