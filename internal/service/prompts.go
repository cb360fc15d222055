package service

// Prompt templates for the three parallel interview analysis chains.
// Each takes the normalized transcript via %s.

const summaryPrompt = `You are an expert interview analyst. Create a comprehensive but concise summary of the interview transcript.

Focus on:
- Overall interview flow and structure
- Key topics discussed
- Candidate's main responses and approaches
- Interview outcome and general impression

Keep the summary between 150-300 words. Be objective and professional.

Interview Transcript:
%s

Summary:`

const highlightsPrompt = `You are an expert interview analyst. Extract key highlights (positive findings) and lowlights (concerning or off-track findings) from the interview.

Return your response in this exact JSON format:
{
  "highlights": ["highlight 1", "highlight 2", "highlight 3"],
  "lowlights": ["lowlight 1", "lowlight 2"]
}

Highlights should include:
- Strong technical skills demonstrated
- Good problem-solving approaches
- Positive behavioral indicators
- Relevant experience mentioned

Lowlights should include:
- Knowledge gaps or weaknesses
- Poor communication or unclear responses
- Red flags or concerning behaviors
- Off-topic or irrelevant responses

Provide 3-5 highlights and 1-3 lowlights. Be specific and actionable.

Interview Transcript:
%s

JSON Response:`

const entitiesPrompt = `You are an expert interview analyst. Extract key candidate information and tangible details from the interview transcript.

Return your response in this exact JSON format:
{
  "role": "position they're applying for or current role",
  "current_company": "their current or most recent company",
  "experience_years": "years of relevant experience",
  "key_skills": "main technical skills mentioned",
  "education": "educational background if mentioned",
  "location": "location if mentioned",
  "other_details": "any other relevant tangible information"
}

Only include information that is explicitly mentioned in the transcript. Use "Not mentioned" for fields where no information is provided. Be factual and avoid assumptions.

Interview Transcript:
%s

JSON Response:`

// Prompt templates for the product feedback chains.

const classifyFeedbackPrompt = `You are a customer feedback analyst. Classify the following feedback about the product "%s" into exactly one of these categories: positive, negative, neutral, escalate.

Use "escalate" for feedback that mentions safety issues, legal threats, or demands requiring human attention.

Respond with a single word: the category.

Feedback:
%s

Category:`

const feedbackReplyPrompt = `You are a customer support agent for the product "%s". The feedback below was classified as "%s". Write a short (2-4 sentences), professional and empathetic reply appropriate to that classification. Thank the customer, address their point, and avoid making promises you cannot keep.

Feedback:
%s

Reply:`
