package llm

const quizPrompt = `You are a quiz generator. Your ONLY task is to generate valid JSON.

Article: %s
Content: %s

Generate exactly 5 multiple-choice questions based on the article.

RULES:
- Output ONLY valid JSON array
- NO markdown, NO explanations, NO extra text
- Each question must have exactly 4 options
- Answer must be one of the 4 options (exact match)
- Difficulty must be: easy, medium, or hard
- All fields required: question, options, answer, difficulty, explanation

JSON FORMAT:
[
  {
    "question": "What is..?",
    "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
    "answer": "Option 2",
    "difficulty": "medium",
    "explanation": "Because..."
  }
]

Generate the quiz:`

const topicsPrompt = `Based on the following Wikipedia article, suggest 5-8 related Wikipedia topics for further reading.

Article Title: %s
Article Content Summary:
%s

IMPORTANT INSTRUCTIONS:
1. Suggest real Wikipedia topics related to the article
2. Topics should be diverse and relevant
3. Return ONLY a JSON array of topic names (strings)
4. No markdown, no extra text

Return in this exact format:
["Topic 1", "Topic 2", "Topic 3", ...]

Generate the related topics now:`
