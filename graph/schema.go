package graph

// Schema is the GraphQL wire contract served at /graphql. The resolver
// methods in this package are hand-written to match it field for field;
// graphql-go type-checks them against this string at startup.
const Schema = `
  schema {
    query: Query
    mutation: Mutation
  }

  type User {
    id: ID!
    name: String!
    email: String!
    age: Int
    bio: String
    createdAt: String!
    updatedAt: String!
  }

  type Post {
    id: ID!
    description: String!
    authorId: ID!
    author: User
  }

  input UserInput {
    name: String!
    email: String!
    age: Int
    bio: String
  }

  input UpdateUserInput {
    name: String
    email: String
    age: Int
    bio: String
  }

  input PostInput {
    authorId: ID!
    description: String!
  }

  type Query {
    "Get all users"
    users: [User!]!
    "Get a user by ID"
    user(id: ID!): User
    "Get users by email"
    usersByEmail(email: String!): [User!]!
    "Get all posts with their authors"
    posts: [Post!]!
  }

  type Mutation {
    "Create a new user"
    createUser(input: UserInput!): User!
    "Update an existing user"
    updateUser(id: ID!, input: UpdateUserInput!): User
    "Delete a user"
    deleteUser(id: ID!): Boolean!
    "Create a new post"
    createPost(input: PostInput!): Post!
  }
`
