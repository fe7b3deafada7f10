// Package domain contains the core business entities for crosscheck:
// documents under comparison, matching-block decompositions, score
// matrices and the domain error taxonomy.
//
// Domain types have no dependencies on adapters or infrastructure.
package domain
