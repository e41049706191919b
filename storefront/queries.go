package storefront

// Storefront GraphQL documents. The pipeline issues exactly two reads per
// cart change (collections lookup, then candidate search) and one write per
// accepted offer.

const productCollectionsQuery = `
query ProductCollections($ids: [ID!]!, $first: Int!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      collections(first: $first) {
        nodes { handle }
      }
    }
  }
}`

const candidateSearchQuery = `
query CandidateProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    nodes {
      id
      title
      images(first: 1) { nodes { url } }
      variants(first: 1) {
        nodes {
          id
          price { amount currencyCode }
        }
      }
    }
  }
}`

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    userErrors { message }
  }
}`
