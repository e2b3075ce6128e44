// Package contract provides the consumer/provider contract model.
//
// A Contract is an ordered list of interactions between a consumer and a
// provider. Each interaction pairs the request the consumer sends with the
// response it expects; bodies are JSON values and carry path-addressed
// matching rules produced by the element compiler.
//
// The persisted form follows the Pact V3 layout:
//
//	{
//	  "consumer": {"name": "web"},
//	  "provider": {"name": "orders"},
//	  "interactions": [{
//	    "description": "a request for order 1",
//	    "providerState": "order 1 exists",
//	    "request": {"method": "GET", "path": "/orders/1"},
//	    "response": {
//	      "status": 200,
//	      "body": {"id": 1},
//	      "matchingRules": {"body": {"$.id": {"matchers": [{"match": "type"}]}}}
//	    }
//	  }],
//	  "metadata": {"pactSpecification": {"version": "3.0.0"}}
//	}
//
// V2 files (flat "$.body..." rule paths, query strings) are accepted on read.
//
// Contracts are read-only once parsed or built.
package contract
